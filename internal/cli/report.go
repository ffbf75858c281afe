package cli

import (
	"github.com/spf13/cobra"

	"fund-reporter/internal/analysts"
	"fund-reporter/internal/models"
	"fund-reporter/internal/report"
)

func newReportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report [file]",
		Short: "Render a trading decision report to the console",
		Long: `Render a trading decision result as a colorized console report.

The result JSON is read from the given file, or from stdin when no file
is given. Each ticker gets an analyst signal table and a trading decision
block, followed by a portfolio summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			result, err := models.ParseReportResult(data)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			renderer := report.NewRenderer(
				output.Styler(),
				orderingPolicy(app),
				app.Config.Report.ReasoningWidth,
				app.Logger,
			)
			output.Print("%s", renderer.TradingReport(result))
			return nil
		},
	}
}

// orderingPolicy builds the analyst ordering from config, falling back to
// the built-in roster order.
func orderingPolicy(app *App) *analysts.OrderingPolicy {
	if len(app.Config.Report.AnalystOrder) > 0 {
		return analysts.NewOrderingPolicyFor(app.Config.Report.AnalystOrder)
	}
	return analysts.NewOrderingPolicy()
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"fund-reporter/internal/excel"
	"fund-reporter/internal/export"
	"fund-reporter/internal/models"
	"fund-reporter/internal/report"
)

func newBacktestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Render or export backtest results",
		Long:  "Render backtest trade and summary rows to the console, or export them to xlsx and CSV artifacts.",
	}

	cmd.AddCommand(newBacktestRenderCmd(app))
	cmd.AddCommand(newBacktestExportCmd(app))
	return cmd
}

func newBacktestRenderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "render [file]",
		Short: "Render a backtest summary and trade table to the console",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			input, err := models.ParseBacktestInput(data)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"trades":  models.TradeRows(input.Rows),
					"summary": models.LatestSummary(input.Rows),
				})
			}

			renderer := report.NewRenderer(
				output.Styler(),
				orderingPolicy(app),
				app.Config.Report.ReasoningWidth,
				app.Logger,
			)
			output.Print("%s", renderer.BacktestReport(input.Rows))
			return nil
		},
	}
}

func newBacktestExportCmd(app *App) *cobra.Command {
	var outputPath string
	var csvPath string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export backtest results to an xlsx workbook",
		Long: `Export backtest results to an xlsx workbook with a trades sheet and a
performance metrics sheet. With --csv, the trade rows are additionally
written as a CSV file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			input, err := models.ParseBacktestInput(data)
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = excel.DefaultPath(app.Config.Export.OutputDir, "backtest", time.Now())
			}

			builder := excel.NewBacktestWorkbookBuilder(app.Logger)
			if err := builder.Build(input.Rows, input.Performance, path); err != nil {
				return err
			}

			if csvPath != "" {
				writer := export.NewTradesCSVWriter(app.Logger)
				if err := writer.Write(input.Rows, csvPath); err != nil {
					return err
				}
			}

			recordRun(cmd.Context(), app, "backtest", path, tradeTickers(input.Rows))

			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path, "csv": csvPath})
			}
			output.Success("Exported backtest workbook to %s", path)
			if csvPath != "" {
				output.Success("Exported trade rows to %s", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "destination path (default: <output_dir>/backtest-<timestamp>.xlsx)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write trade rows as CSV to this path")
	return cmd
}

// tradeTickers collects the distinct tickers traded, in first-seen order.
func tradeTickers(rows []models.BacktestRow) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, t := range models.TradeRows(rows) {
		if !seen[t.Ticker] {
			seen[t.Ticker] = true
			tickers = append(tickers, t.Ticker)
		}
	}
	return tickers
}

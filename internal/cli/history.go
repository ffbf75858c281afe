package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fund-reporter/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	var kind string
	var limit int
	var since string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived export runs",
		Long:  "List export runs recorded in the history database, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			if app.Store == nil {
				return fmt.Errorf("history store unavailable")
			}

			filter := store.RunFilter{Kind: kind, Limit: limit}
			if since != "" {
				t, err := time.Parse("2006-01-02", since)
				if err != nil {
					return fmt.Errorf("invalid --since date %q, want YYYY-MM-DD", since)
				}
				filter.Since = t
			}

			runs, err := app.Store.GetRuns(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}

			if len(runs) == 0 {
				output.Dim("No export runs recorded")
				return nil
			}

			table := NewTable(output, "Time", "Kind", "Path", "Tickers")
			for _, run := range runs {
				table.AddRow(
					FormatDateTime(run.Timestamp),
					run.Kind,
					run.Path,
					TruncateString(FormatTickers(run.Tickers), 40),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "filter by run kind (analysis, backtest, reference)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&since, "since", "", "only runs on or after this date (YYYY-MM-DD)")
	return cmd
}

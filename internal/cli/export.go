package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"fund-reporter/internal/excel"
	"fund-reporter/internal/models"
)

func newExportCmd(app *App) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a trading decision result to an xlsx workbook",
		Long: `Export a trading decision result to a multi-sheet xlsx workbook.

The workbook carries a decisions sheet, an aggregate signals sheet, one
sheet per analyst with flattened reasoning columns, and dedicated
technical, fundamental, and sentiment sheets. The file appears at the
destination only after a fully successful build.`,
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

			path := outputPath
			if path == "" {
				path = excel.DefaultPath(app.Config.Export.OutputDir, "analysis", time.Now())
			}

			builder := excel.NewWorkbookBuilder(app.Logger)
			if err := builder.Build(result, path); err != nil {
				return err
			}

			recordRun(cmd.Context(), app, "analysis", path, result.Tickers())

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"path":    path,
					"tickers": result.Tickers(),
				})
			}
			output.Success("Exported workbook to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "destination path (default: <output_dir>/analysis-<timestamp>.xlsx)")
	return cmd
}

// recordRun archives a completed export. Failures are logged, never fatal:
// an export that reached the disk should not be reported as failed because
// the history database was unavailable.
func recordRun(ctx context.Context, app *App, kind, path string, tickers []string) {
	if app.Store == nil {
		return
	}
	run := &models.ExportRun{
		Timestamp: time.Now(),
		Kind:      kind,
		Path:      path,
		Tickers:   tickers,
	}
	if err := app.Store.RecordRun(ctx, run); err != nil {
		app.Logger.Warn().Err(err).Str("path", path).Msg("Failed to record export run")
	}
}

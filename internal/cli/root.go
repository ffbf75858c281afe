// Package cli provides the command-line interface for the reporting tool.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fund-reporter/internal/config"
	"fund-reporter/internal/logging"
	"fund-reporter/internal/prices"
	"fund-reporter/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.HistoryStore
	Prices prices.Source
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize SQLite run-history store
	historyStore, err := store.NewSQLiteStore(cfg.Export.HistoryDB)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize history store, run history will be unavailable")
	} else {
		app.Store = historyStore
		logger.Debug().Str("path", cfg.Export.HistoryDB).Msg("History store initialized")
	}

	app.Prices = prices.NewClient(cfg.Prices.BaseURL, cfg.Prices.APIKey, logger)

	rootCmd := &cobra.Command{
		Use:   "fund-reporter",
		Short: "Fund Reporter - trading decision reports and workbook exports",
		Long: `Fund Reporter turns trading decision results into human-readable output.

It renders a colorized console report of agent signals and decisions,
exports multi-sheet xlsx workbooks, and archives export runs.

Use 'fund-reporter help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/fund-reporter)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(newVersionCmd(cfg))
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newBacktestCmd(app))
	rootCmd.AddCommand(newReferenceExportCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}

func newVersionCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd, cfg)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Fund Reporter v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

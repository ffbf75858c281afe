package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fund-reporter/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the price-history passthrough server",
		Long: `Run an HTTP server exposing price history from the configured upstream.

  GET /api/price-history?ticker=AAPL&start_date=2025-01-01&end_date=2025-03-01

The response carries the ticker and its daily price records in upstream
order. Missing dates default to the last three months.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config)

			listenAddr := addr
			if listenAddr == "" {
				listenAddr = app.Config.Server.Addr
			}

			srv := server.New(listenAddr, app.Prices, app.Logger)
			if err := srv.Start(); err != nil {
				return err
			}
			output.Info("Serving price history on %s, press Ctrl+C to stop", listenAddr)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

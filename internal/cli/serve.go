package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/experiment-tracker/internal/core/storage/warehouse"
	"github.com/aevon-lab/experiment-tracker/internal/migrations"
	"github.com/aevon-lab/experiment-tracker/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the experiment-tracker HTTP server.

The server provides:
  - POST /api/search and GET /api/experiments/:experiment_id
  - GET /api/connection-check warehouse probe
  - GET /health, GET /api/health and GET /metrics
  - the static frontend under /app when server.static_dir is set

Example:
  experiment-tracker serve --config experiment-tracker.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		slog.Info("Loaded config",
			"driver", a.cfg.Warehouse.Driver,
			"profile", a.cfg.Warehouse.Profile,
			"table", a.cfg.Columns.Table,
			"app_env", a.cfg.Server.AppEnv)

		if a.cfg.Warehouse.Driver == warehouse.DriverPostgres {
			if err := migrations.Run(a.client.DB(), a.cfg.Warehouse.AutoMigrate); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}
		}

		srv := server.New(server.Options{
			Addr:           a.cfg.Server.Addr(),
			Mode:           a.cfg.Server.Mode,
			AppName:        a.cfg.Server.AppName,
			AllowedOrigins: a.cfg.Server.AllowedOrigins,
			StaticDir:      a.cfg.Server.StaticDir,
		}, a.client.DB())
		a.service.RegisterRoutes(srv.Engine)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		g, ctx := errgroup.WithContext(ctx)

		// Signal handler → triggers server shutdown.
		g.Go(func() error {
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(quit)
			select {
			case <-quit:
				slog.Info("Signal received, shutting down...")
				cancel()
			case <-ctx.Done():
			}
			return nil
		})

		// HTTP server blocks until ctx is cancelled.
		g.Go(func() error {
			return srv.Run(ctx)
		})

		if err := g.Wait(); err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		slog.Info("Shutdown complete")
		return nil
	})
}

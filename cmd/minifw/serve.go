package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/minifw/internal/config"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/persist"
	"github.com/vango-dev/minifw/pkg/server"
)

func serveCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		addr       string
		routerMode string
		dataFile   string
		withMetric bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo app",
		Long: `Serve the todo app over HTTP and WebSocket.

GET requests return the rendered page. Each WebSocket connection on
/ws runs its own app instance. With metrics enabled, Prometheus
metrics are exposed on /metrics.

Examples:
  minifw serve
  minifw serve --addr=:8080 --router=history
  minifw serve --data=todos.db --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if routerMode != "" {
				cfg.RouterMode = routerMode
			}
			if dataFile != "" {
				cfg.DataFile = dataFile
			}
			if withMetric {
				cfg.Metrics.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().StringVar(&routerMode, "router", "", `Router mode, "hash" or "history"`)
	cmd.Flags().StringVar(&dataFile, "data", "", "bbolt file to persist state in")
	cmd.Flags().BoolVar(&withMetric, "metrics", false, "Expose Prometheus metrics on /metrics")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	b := &builder{cfg: cfg, logger: logger}
	if cfg.Metrics.Enabled {
		b.metrics = metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))
	}
	if path := cfg.DataPath(); path != "" {
		snap, err := persist.Open(path, persist.WithLogger(logger.With("component", "persist")))
		if err != nil {
			return err
		}
		defer snap.Close()
		b.snap = snap
	}

	srv := server.New(&server.Config{
		Address: cfg.Addr,
		Title:   cfg.Name,
	}, b.factory(),
		server.WithLogger(logger.With("component", "server")),
		server.WithMetrics(b.metrics))

	logger.Info("serving", "name", cfg.Name, "addr", cfg.Addr, "router", cfg.RouterMode)
	return srv.Run(ctx)
}

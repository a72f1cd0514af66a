package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mercator-hq/stmtdiag/pkg/cli"
	"mercator-hq/stmtdiag/pkg/config"
	"mercator-hq/stmtdiag/pkg/diagnostics/coordinator"
	"mercator-hq/stmtdiag/pkg/diagnostics/monitor"
	"mercator-hq/stmtdiag/pkg/server"
	"mercator-hq/stmtdiag/pkg/telemetry/health"
	"mercator-hq/stmtdiag/pkg/telemetry/logging"
	"mercator-hq/stmtdiag/pkg/telemetry/metrics"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the request monitor and the ops endpoints",
	Long: `Run the request state monitor on its cron schedule and serve /health,
/ready, /version and /metrics until SIGINT or SIGTERM.

When --config is set, the file is watched and a changed logging level is
applied without a restart.

Examples:
  stmtdiag serve --config /etc/stmtdiag/stmtdiag.yaml
  stmtdiag serve --listen 0.0.0.0:9090 --log-level debug
  stmtdiag serve --dry-run`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("config", err.Error())
	}
	config.SetConfig(cfg)

	logger, err := setupLogging(&cfg.Telemetry.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if serveFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	store, err := openStore(&cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	tracer, err := setupTracing(&cfg.Telemetry.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush spans", "error", err)
		}
	}()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
	coord := coordinator.New(store,
		coordinator.WithCreateMode(coordinator.CreateMode(cfg.Coordinator.CreateMode)),
		coordinator.WithRecorder(collector),
		coordinator.WithTracer(tracer.Tracer()),
	)

	checker := health.New(5 * time.Second)
	checker.RegisterCheck("store", health.StoreCheck(store))

	if cfg.Monitor.Enabled {
		mon := monitor.NewMonitor(coord, collector, &monitor.Config{
			Schedule:   cfg.Monitor.Schedule,
			RunOnStart: true,
		})
		if err := mon.Start(ctx); err != nil {
			return cli.NewCommandError("serve", fmt.Errorf("failed to start monitor: %w", err))
		}
		defer mon.Stop()
		checker.RegisterCheck("monitor", health.MonitorCheck(mon))

		if next := mon.NextRun(); next != nil {
			slog.Info("request monitor started", "schedule", cfg.Monitor.Schedule, "next_survey", next)
		}
	}

	if cfgFile != "" {
		watcher, err := config.NewWatcher(cfgFile, config.DefaultDebounceInterval, applyReload(logger), slog.Default())
		if err != nil {
			slog.Warn("configuration hot reload disabled", "error", err)
		} else {
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					slog.Error("configuration watcher failed", "error", err)
				}
			}()
			defer watcher.Stop()
		}
	}

	opts := []server.Option{
		server.WithVersion(health.NewVersionInfo(Version, GitCommit, BuildDate)),
	}
	if cfg.Telemetry.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(cfg.Telemetry.Metrics.Path, collector.Handler()))
	}
	srv := server.NewServer(&cfg.Server, checker, opts...)

	fmt.Fprintf(cmd.OutOrStdout(), "stmtdiag %s serving on %s (store %s, create mode %s)\n",
		Version, cfg.Server.ListenAddress, cfg.Store.Path, coord.Mode())

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Server stopped")
	return nil
}

// applyReload returns the watcher callback. Only the log level is applied
// live; other changes take effect on restart.
func applyReload(logger *logging.Logger) func(*config.Config) {
	return func(cfg *config.Config) {
		if err := logger.SetLevel(cfg.Telemetry.Logging.Level); err != nil {
			slog.Error("failed to apply reloaded log level", "error", err)
			return
		}
		slog.Info("log level applied", "level", cfg.Telemetry.Logging.Level)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mercator-hq/stmtdiag/pkg/cli"
	"mercator-hq/stmtdiag/pkg/config"
	"mercator-hq/stmtdiag/pkg/diagnostics/coordinator"
	"mercator-hq/stmtdiag/pkg/diagnostics/sqlexec"
	"mercator-hq/stmtdiag/pkg/telemetry/logging"
	"mercator-hq/stmtdiag/pkg/telemetry/tracing"
)

// loadConfig loads the --config file with environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg, nil
}

// setupLogging installs the configured logger as the slog default.
func setupLogging(cfg *config.LoggingConfig, w io.Writer) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Writer:    w,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())
	return logger, nil
}

// openStore opens the request store described by cfg.
func openStore(cfg *config.StoreConfig) (*sqlexec.SQLite, error) {
	store, err := sqlexec.NewSQLite(&sqlexec.Config{
		Driver:       cfg.Driver,
		Path:         cfg.Path,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
		WALMode:      cfg.WALMode,
		BusyTimeout:  cfg.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open request store: %w", err)
	}
	return store, nil
}

// setupTracing creates the tracer described by cfg.
func setupTracing(cfg *config.TracingConfig) (*tracing.Tracer, error) {
	tracer, err := tracing.New(cfg, Version)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}
	return tracer, nil
}

// session is the state shared by the request commands.
type session struct {
	cfg    *config.Config
	store  *sqlexec.SQLite
	tracer *tracing.Tracer
	coord  *coordinator.Coordinator
}

// openSession loads configuration, sets up logging on stderr and opens the
// store. opts are appended to the coordinator options derived from cfg.
func openSession(stderr io.Writer, opts ...coordinator.Option) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := setupLogging(&cfg.Telemetry.Logging, stderr); err != nil {
		return nil, err
	}

	tracer, err := setupTracing(&cfg.Telemetry.Tracing)
	if err != nil {
		return nil, err
	}

	store, err := openStore(&cfg.Store)
	if err != nil {
		tracer.Shutdown(context.Background())
		return nil, err
	}

	opts = append([]coordinator.Option{
		coordinator.WithCreateMode(coordinator.CreateMode(cfg.Coordinator.CreateMode)),
		coordinator.WithTracer(tracer.Tracer()),
	}, opts...)

	return &session{
		cfg:    cfg,
		store:  store,
		tracer: tracer,
		coord:  coordinator.New(store, opts...),
	}, nil
}

// Close flushes pending spans and closes the store.
func (s *session) Close() error {
	return errors.Join(s.tracer.Shutdown(context.Background()), s.store.Close())
}

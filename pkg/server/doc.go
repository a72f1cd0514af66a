// Package server provides the operational HTTP server of "stmtdiag serve".
//
// It exposes no request management API; requests are listed, created and
// cancelled through the CLI. The server only reports on the process:
//
//   - GET /health - Liveness probe (always 200 while the process runs)
//   - GET /ready - Readiness probe (store ping and monitor checks)
//   - GET /version - Build information
//   - GET /metrics - Prometheus metrics, when metrics are enabled
//
// Requests pass through request ID, logging and panic recovery middleware.
//
// Basic usage:
//
//	srv := server.NewServer(&cfg.Server, checker,
//	    server.WithMetrics(cfg.Telemetry.Metrics.Path, collector.Handler()),
//	)
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until ctx is cancelled and then shuts down gracefully within
// server.shutdown_timeout.
package server

// Package telemetry groups the observability packages of stmtdiag.
//
// # Components
//
//   - logging: structured slog logging with operation, request and
//     fingerprint fields taken from the context
//   - metrics: Prometheus counters and histograms for coordinator operations
//     and gauges for the surveyed request states
//   - tracing: OpenTelemetry spans for coordinator operations
//   - health: /health, /ready and /version endpoints
//
// # Usage
//
//	logger, _ := logging.New(logging.Config{Level: "info", Format: "json"})
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//
//	coord := coordinator.New(store,
//	    coordinator.WithLogger(logger.Slog()),
//	    coordinator.WithRecorder(collector),
//	    coordinator.WithTracer(tracer.Tracer()),
//	)
package telemetry

// Package tracing provides OpenTelemetry tracing for stmtdiag.
//
// Every coordinator operation runs in a span named "coordinator.<operation>"
// carrying the fingerprint or request ID it acts on and its outcome. Spans
// are exported over OTLP gRPC when telemetry.tracing.enabled is set; a
// disabled tracer hands out noop spans.
//
// # Sampling Strategies
//
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a share of traces by trace ID (sample_ratio)
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	coord := coordinator.New(store, coordinator.WithTracer(tracer.Tracer()))
package tracing

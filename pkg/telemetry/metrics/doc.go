// Package metrics provides Prometheus metrics for the diagnostics
// coordinator.
//
// # Metrics
//
//   - Operation metrics: coordinator calls by operation and outcome, and
//     their duration
//   - State metrics: pending, completed and expired request counts as
//     published by the monitor, plus survey bookkeeping
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	coord := coordinator.New(exec, coordinator.WithRecorder(collector))
//	mon := monitor.New(coord, collector, cfg.Monitor.Schedule)
//
//	mux.Handle("/metrics", collector.Handler())
//
// All metrics live on the collector's own registry, so tests can create as
// many collectors as they need without clashing on the default registry.
//
// # Prometheus Endpoint
//
//	# HELP stmtdiag_coordinator_operations_total Total number of coordinator operations by outcome
//	# TYPE stmtdiag_coordinator_operations_total counter
//	stmtdiag_coordinator_operations_total{operation="create",outcome="conflict"} 3
package metrics

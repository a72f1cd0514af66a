package metrics

import (
	"time"

	"mercator-hq/stmtdiag/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics tracks coordinator calls.
//
// Metrics:
//   - stmtdiag_coordinator_operations_total: Calls by operation and outcome
//   - stmtdiag_coordinator_operation_duration_seconds: Call duration histogram
type OperationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewOperationMetrics creates and registers operation metrics with the
// provided registry.
func NewOperationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OperationMetrics {
	om := &OperationMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operations_total",
				Help:      "Total number of coordinator operations by outcome",
			},
			[]string{"operation", "outcome"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of coordinator operations in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(om.operationsTotal, om.operationDuration)

	return om
}

// Observe records one operation.
func (om *OperationMetrics) Observe(operation, outcome string, duration time.Duration) {
	om.operationsTotal.WithLabelValues(operation, outcome).Inc()
	om.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

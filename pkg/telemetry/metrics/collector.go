package metrics

import (
	"time"

	"mercator-hq/stmtdiag/pkg/config"
	"mercator-hq/stmtdiag/pkg/diagnostics"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric of the coordinator process. It
// implements coordinator.Recorder and monitor.Publisher.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Coordinator operation metrics
	operationMetrics *OperationMetrics

	// Request state gauges published by the monitor
	stateMetrics *StateMetrics
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "stmtdiag",
//		Subsystem: "coordinator",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		// Single SQLite statements: 1ms - 5s
		cfg.DurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0, 5.0}
	}

	return &Collector{
		config:           cfg,
		registry:         registry,
		operationMetrics: NewOperationMetrics(cfg, registry),
		stateMetrics:     NewStateMetrics(cfg, registry),
	}
}

// ObserveOperation records a completed coordinator operation.
//
// Parameters:
//   - operation: "list", "create", "cancel" or "stats"
//   - outcome: "success", "conflict", "not_found", "integrity" or "error"
//   - duration: Time spent in the operation
func (c *Collector) ObserveOperation(operation, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.operationMetrics.Observe(operation, outcome, duration)
}

// PublishStats sets the request state gauges from a survey.
func (c *Collector) PublishStats(stats *diagnostics.Stats) {
	if !c.config.Enabled || stats == nil {
		return
	}

	c.stateMetrics.Set(stats)
}

// RecordSurvey records the outcome of one monitor survey.
func (c *Collector) RecordSurvey(at time.Time, err error) {
	if !c.config.Enabled {
		return
	}

	c.stateMetrics.RecordSurvey(at, err)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

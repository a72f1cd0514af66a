package metrics

import (
	"time"

	"mercator-hq/stmtdiag/pkg/config"
	"mercator-hq/stmtdiag/pkg/diagnostics"

	"github.com/prometheus/client_golang/prometheus"
)

// StateMetrics tracks the request population as seen by the monitor.
//
// Metrics:
//   - stmtdiag_coordinator_requests: Requests by derived state
//   - stmtdiag_coordinator_surveys_total: Monitor surveys by status
//   - stmtdiag_coordinator_last_survey_timestamp_seconds: Last successful survey
type StateMetrics struct {
	requests          *prometheus.GaugeVec
	surveysTotal      *prometheus.CounterVec
	lastSurveySeconds prometheus.Gauge
}

// NewStateMetrics creates and registers state metrics with the provided
// registry.
func NewStateMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *StateMetrics {
	sm := &StateMetrics{
		requests: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests",
				Help:      "Number of diagnostics requests by state",
			},
			[]string{"state"},
		),

		surveysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "surveys_total",
				Help:      "Total number of request state surveys",
			},
			[]string{"status"},
		),

		lastSurveySeconds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_survey_timestamp_seconds",
				Help:      "Unix time of the last successful request state survey",
			},
		),
	}

	registry.MustRegister(sm.requests, sm.surveysTotal, sm.lastSurveySeconds)

	return sm
}

// Set replaces the state gauges with stats.
func (sm *StateMetrics) Set(stats *diagnostics.Stats) {
	sm.requests.WithLabelValues(string(diagnostics.StatePending)).Set(float64(stats.Pending))
	sm.requests.WithLabelValues(string(diagnostics.StateCompleted)).Set(float64(stats.Completed))
	sm.requests.WithLabelValues(string(diagnostics.StateExpired)).Set(float64(stats.Expired))
}

// RecordSurvey counts a survey and, on success, stamps its time.
func (sm *StateMetrics) RecordSurvey(at time.Time, err error) {
	if err != nil {
		sm.surveysTotal.WithLabelValues("error").Inc()
		return
	}
	sm.surveysTotal.WithLabelValues("success").Inc()
	sm.lastSurveySeconds.Set(float64(at.Unix()))
}

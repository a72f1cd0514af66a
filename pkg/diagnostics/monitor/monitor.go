package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mercator-hq/stmtdiag/pkg/diagnostics"
)

// Config contains configuration for the request state monitor.
type Config struct {
	// Schedule is a cron expression for scheduling surveys.
	// Example: "*/5 * * * *" (every five minutes). Empty disables scheduling.
	Schedule string

	// RunOnStart runs one survey as soon as the monitor starts.
	RunOnStart bool
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig() *Config {
	return &Config{
		Schedule:   "* * * * *",
		RunOnStart: true,
	}
}

// StatsSource counts requests by state. coordinator.Coordinator implements it.
type StatsSource interface {
	Stats(ctx context.Context) (*diagnostics.Stats, error)
}

// Publisher receives survey results. metrics.Collector implements it.
type Publisher interface {
	PublishStats(stats *diagnostics.Stats)
	RecordSurvey(at time.Time, err error)
}

// Monitor periodically surveys the request store and publishes the counts.
// It only reads: expired and cancelled requests are left in place.
type Monitor struct {
	source    StatsSource
	publisher Publisher
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time

	mu   sync.RWMutex
	last *diagnostics.Stats
}

// NewMonitor creates a new request state monitor. publisher may be nil, in
// which case surveys are only logged.
func NewMonitor(source StatsSource, publisher Publisher, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}

	m := &Monitor{
		source:    source,
		publisher: publisher,
		config:    config,
		logger:    slog.Default().With("component", "diagnostics.monitor"),
		now:       time.Now,
	}
	m.scheduler = NewScheduler(m)

	return m
}

// RunOnce surveys the store once and publishes the result.
func (m *Monitor) RunOnce(ctx context.Context) (*diagnostics.Stats, error) {
	at := m.now()

	stats, err := m.source.Stats(ctx)
	if m.publisher != nil {
		m.publisher.RecordSurvey(at, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to survey requests: %w", err)
	}

	if m.publisher != nil {
		m.publisher.PublishStats(stats)
	}

	m.mu.Lock()
	m.last = stats
	m.mu.Unlock()

	m.logger.Debug("request survey completed",
		"pending", stats.Pending,
		"completed", stats.Completed,
		"expired", stats.Expired,
	)

	return stats, nil
}

// Last returns the result of the most recent successful survey, or nil.
func (m *Monitor) Last() *diagnostics.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.last == nil {
		return nil
	}
	stats := *m.last
	return &stats
}

// Start begins scheduled surveys. See Scheduler.Start.
func (m *Monitor) Start(ctx context.Context) error {
	if m.config.RunOnStart {
		if _, err := m.RunOnce(ctx); err != nil {
			m.logger.Warn("initial request survey failed", "error", err)
		}
	}
	return m.scheduler.Start(ctx)
}

// Stop stops scheduled surveys and waits for a running survey to finish.
func (m *Monitor) Stop() {
	m.scheduler.Stop()
}

// NextRun returns the next scheduled survey time, or nil when not scheduled.
func (m *Monitor) NextRun() *time.Time {
	return m.scheduler.NextRun()
}

// IsRunning reports whether surveys are scheduled.
func (m *Monitor) IsRunning() bool {
	return m.scheduler.IsRunning()
}

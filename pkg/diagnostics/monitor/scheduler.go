package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs monitor surveys on a cron schedule.
type Scheduler struct {
	monitor *Monitor
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a new survey scheduler.
func NewScheduler(monitor *Monitor) *Scheduler {
	return &Scheduler{
		monitor: monitor,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "diagnostics.scheduler"),
	}
}

// Start begins scheduled surveys based on monitor.config.Schedule.
//
// Common cron expressions:
//   - "* * * * *"     - Every minute
//   - "*/5 * * * *"   - Every five minutes
//   - "0 * * * *"     - Hourly
//
// If Schedule is empty, the scheduler does nothing. The scheduler stops
// when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := s.monitor.config.Schedule
	if schedule == "" {
		s.logger.Info("survey schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		s.runSurvey(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule survey: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("survey scheduler started", "schedule", schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runSurvey(ctx context.Context) {
	if _, err := s.monitor.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled survey failed", "error", err)
	}
}

// Stop stops the scheduler and waits for any running survey to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("survey scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled survey time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

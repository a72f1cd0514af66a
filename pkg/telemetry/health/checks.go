package health

import (
	"context"
	"fmt"
	"time"
)

// Pinger is implemented by sqlexec.SQLite.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreCheck reports the request store unhealthy when it cannot be pinged.
func StoreCheck(store Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("request store unreachable: %w", err)
		}
		return nil
	}
}

// SurveyClock is implemented by monitor.Monitor.
type SurveyClock interface {
	IsRunning() bool
	NextRun() *time.Time
}

// MonitorCheck reports the monitor unhealthy when its scheduler stopped.
func MonitorCheck(m SurveyClock) CheckFunc {
	return func(ctx context.Context) error {
		if !m.IsRunning() {
			return fmt.Errorf("request monitor is not running")
		}
		if m.NextRun() == nil {
			return fmt.Errorf("request monitor has no scheduled survey")
		}
		return nil
	}
}

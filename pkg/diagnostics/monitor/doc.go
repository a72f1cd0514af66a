// Package monitor surveys the diagnostics request store on a schedule and
// publishes how many requests are pending, completed and expired.
//
// # Basic Usage
//
//	mon := monitor.NewMonitor(coord, collector, &monitor.Config{
//	    Schedule:   "*/5 * * * *",
//	    RunOnStart: true,
//	})
//	if err := mon.Start(ctx); err != nil {
//	    return err
//	}
//	defer mon.Stop()
//
// The monitor never modifies requests. Expired and cancelled requests stay
// in the store and are counted as expired.
package monitor

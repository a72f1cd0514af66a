// Package health provides liveness and readiness endpoints for the
// stmtdiag server.
//
// # Endpoints
//
//   - /health: Liveness probe, answers 200 while the process serves HTTP
//   - /ready: Readiness probe, runs the registered component checks
//   - /version: Build information
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("store", health.StoreCheck(exec))
//	checker.RegisterCheck("monitor", health.MonitorCheck(mon))
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, health.NewVersionInfo(version, commit, buildTime))
//
// # Readiness
//
// Checks run concurrently, each bounded by the checker timeout. A failing or
// timed out check marks the process "degraded" and /ready answers 503 until
// the check passes again.
package health

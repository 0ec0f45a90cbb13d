// Package health provides liveness and readiness endpoints for watch mode.
//
// A Checker runs named checks concurrently, each bounded by a timeout.
// Readiness is "ready" when every check passes and "degraded" otherwise.
// The checks used by advent cover the answer history store, the watched
// input files and the outcome of the most recent solve of each puzzle:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", health.HistoryCheck(store))
//	checker.RegisterCheck("input:toboggan", health.InputCheck("input/day3.txt"))
//
//	tracker := health.NewSolveTracker()
//	checker.RegisterCheck("solve:toboggan", tracker.Check("toboggan"))
//
//	mux := http.NewServeMux()
//	health.Register(mux, checker, version, commit, buildDate)
//
// Endpoints:
//   - /health: liveness, always 200 while the process runs
//   - /ready: readiness, 503 when any check fails
//   - /version: build information
package health

// Package metrics provides Prometheus metrics for puzzle solving.
//
// # Metrics Categories
//
//   - Solve Metrics: run count, duration, input size and latest answers
//   - Password Metrics: entries evaluated and valid per rule kind, parse errors
//   - Traversal Metrics: occupied cells met per route
//   - History Metrics: stored and pruned answer records
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordSolve("toboggan", "success", 3*time.Millisecond, 10240)
//	collector.RecordTrees("3,1", 7)
//	collector.RecordEntries("count", 1000, 493)
//
// # Export
//
// A one-shot CLI run has no scrape window, so the registry can be dumped with
// WriteTextfile for the node_exporter textfile collector. Long-running watch
// sessions may serve Handler on /metrics instead:
//
//	# HELP advent_solver_solves_total Total number of solve runs
//	# TYPE advent_solver_solves_total counter
//	advent_solver_solves_total{puzzle="toboggan",status="success"} 1
package metrics

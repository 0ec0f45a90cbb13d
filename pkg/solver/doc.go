// Package solver runs puzzle solvers and records their answers.
//
// A Solver turns raw input into a list of answers. Solvers are collected in
// a Registry, which keeps registration order so "all" runs are stable.
//
// A Runner executes one solver against one input. Each run gets a UUID run
// ID, a trace span, Prometheus metrics and structured log fields, and its
// answers are written to the history store when one is configured.
//
// Basic usage:
//
//	reg, err := solver.NewRegistryFromConfig(&cfg.Puzzles, collector)
//	runner := solver.NewRunner(reg,
//		solver.WithHistory(store),
//		solver.WithMetrics(collector),
//	)
//	result, err := runner.RunFile(ctx, "toboggan", "input/day3.txt")
package solver

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/advent/pkg/cli"
	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history/retention"
	"mercator-hq/advent/pkg/solver"
	"mercator-hq/advent/pkg/telemetry/health"
	"mercator-hq/advent/pkg/telemetry/tracing"
	"mercator-hq/advent/pkg/watch"
)

var watchFlags struct {
	format      string
	metricsAddr string
	debounce    time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch [expense|passwords|toboggan|all]...",
	Short: "Re-solve puzzles whenever their input files change",
	Long: `Solve the selected puzzles once, then watch their input files and
solve again after every change.

While watching, the answer history is pruned on the configured retention
schedule. With --metrics-addr an HTTP server exposes Prometheus metrics on
/metrics, liveness on /health, readiness on /ready (history store, input
files and the latest solve of each puzzle) and build info on /version.

When the configuration file changes, puzzle parameters (target, kinds,
marker, slopes) are reloaded and every puzzle is solved again. Input
paths, history and telemetry keep the values the watch started with.
Stop with Ctrl+C.

Examples:
  # Watch every puzzle
  advent watch

  # Watch one puzzle and expose metrics
  advent watch toboggan --metrics-addr :9090`,
	ValidArgs: append(slices.Clone(puzzleNames), "all"),
	RunE:      runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.format, "format", "f", "text", "output format: text, json, csv")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before re-solving (uses config if not specified)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(watchFlags.format)
	if err != nil {
		return err
	}

	names, err := selectPuzzles(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = watchFlags.debounce
	}

	env, err := newEnvironment(cmd, cfg)
	if err != nil {
		return err
	}
	defer env.close(context.WithoutCancel(cmd.Context()))

	runner, err := env.runner()
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()
	ctx = tracing.FromEnvironment(ctx)

	// Several puzzles may share one input file.
	byPath := make(map[string][]string)
	var paths []string
	for _, name := range names {
		path, _ := solver.InputPath(&cfg.Puzzles, name)
		if _, ok := byPath[path]; !ok {
			paths = append(paths, path)
		}
		byPath[path] = append(byPath[path], name)
	}

	checker := health.New(2 * time.Second)
	tracker := health.NewSolveTracker()
	if env.history != nil {
		checker.RegisterCheck("history", health.HistoryCheck(env.history))
	}
	for path, owners := range byPath {
		for _, name := range owners {
			checker.RegisterCheck("input:"+name, health.InputCheck(path))
			checker.RegisterCheck("solve:"+name, tracker.Check(name))
		}
	}

	formatter := cli.NewFormatter(format)
	solve := func(ctx context.Context, name, path string) {
		result, err := runner.RunFile(ctx, name, path)
		tracker.Record(name, err)
		if err != nil {
			env.logger.ErrorContext(ctx, "solve failed", "puzzle", name, "error", err)
			return
		}
		if err := formatter.FormatTo(cmd.OutOrStdout(), result); err != nil {
			env.logger.ErrorContext(ctx, "failed to write answers", "error", err)
		}
	}

	for _, path := range paths {
		for _, name := range byPath[path] {
			solve(ctx, name, path)
		}
	}
	env.flushMetrics()

	if env.history != nil {
		pruner := retention.NewPruner(env.history,
			retention.FromConfig(cfg.History.Retention),
			retention.WithRecorder(env.metrics),
		)
		if err := pruner.Start(ctx); err != nil {
			return cli.NewConfigError("history.retention.schedule", err.Error())
		}
		defer pruner.Stop()

		if next := pruner.NextPruning(); next != nil {
			env.logger.Info("history pruning scheduled", "next", next.Format(time.RFC3339))
		}
	}

	if watchFlags.metricsAddr != "" {
		_, shutdown, err := serveMetrics(env, checker, watchFlags.metricsAddr)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer shutdown()
	}

	watchPaths := paths
	if info, err := os.Stat(cfgFile); err == nil && info.Mode().IsRegular() {
		watchPaths = append(slices.Clone(paths), cfgFile)
	}

	watcher, err := watch.NewFileWatcher(&watch.Config{
		Paths:            watchPaths,
		DebounceInterval: cfg.Watch.Debounce,
	}, env.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			env.logger.Warn("failed to stop watcher", "error", err)
		}
	}()

	var mu sync.Mutex
	err = watcher.Watch(ctx, func(ctx context.Context, changed []string) error {
		mu.Lock()
		defer mu.Unlock()

		if slices.Contains(changed, cfgFile) {
			next, err := reloadRunner(env)
			if err != nil {
				return err
			}
			runner = next
			changed = paths
		}

		for _, path := range changed {
			for _, name := range byPath[path] {
				solve(ctx, name, path)
			}
		}
		env.flushMetrics()
		return nil
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	env.logger.Info("watch stopped")
	return nil
}

// reloadRunner re-reads the configuration file and rebuilds the runner with
// its puzzle parameters. Input paths stay as they were.
func reloadRunner(env *environment) (*solver.Runner, error) {
	if err := config.ReloadConfig(cfgFile); err != nil {
		return nil, err
	}

	puzzles := config.GetConfig().Puzzles
	puzzles.Expense.Input = env.cfg.Puzzles.Expense.Input
	puzzles.Passwords.Input = env.cfg.Puzzles.Passwords.Input
	puzzles.Toboggan.Input = env.cfg.Puzzles.Toboggan.Input

	previous := env.cfg.Puzzles
	env.cfg.Puzzles = puzzles
	runner, err := env.runner()
	if err != nil {
		env.cfg.Puzzles = previous
		return nil, err
	}

	env.logger.Info("configuration reloaded", "path", cfgFile)
	return runner, nil
}

// serveMetrics starts the metrics and health endpoints on addr. It returns
// the bound address and a function that shuts the server down gracefully.
func serveMetrics(env *environment, checker *health.Checker, addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", env.metrics.Handler())
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			env.logger.Error("metrics server failed", "error", err)
		}
	}()
	bound := listener.Addr().String()
	env.logger.Info("serving metrics", "addr", bound, "path", "/metrics")

	return bound, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			env.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}, nil
}

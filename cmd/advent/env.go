package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mercator-hq/advent/pkg/cli"
	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
	"mercator-hq/advent/pkg/history/storage"
	"mercator-hq/advent/pkg/solver"
	"mercator-hq/advent/pkg/telemetry/logging"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/telemetry/tracing"
)

// environment holds the components shared by the solving commands.
type environment struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	history history.Storage
}

// loadConfig returns a private copy of the global configuration, loading
// it from --config on first use. Commands may override fields of the copy.
func loadConfig() (*config.Config, error) {
	if config.GetConfig() == nil {
		if err := config.Initialize(cfgFile); err != nil {
			return nil, cli.NewConfigError(cfgFile, fmt.Sprintf("failed to load config: %v", err))
		}
	}

	cfg := *config.GetConfig()
	return &cfg, nil
}

// newEnvironment builds the logger, metrics collector, tracer and history
// store described by cfg. The caller must call close.
func newEnvironment(cmd *cobra.Command, cfg *config.Config) (*environment, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	tracer, err := tracing.New(&cfg.Telemetry.Tracing,
		tracing.WithVersion(Version),
		tracing.WithWriter(cmd.ErrOrStderr()),
	)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	env := &environment{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		tracer:  tracer,
	}

	if cfg.History.Enabled {
		store, err := storage.Open(&cfg.History)
		if err != nil {
			_ = tracer.Shutdown(cmd.Context())
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		env.history = store
	}

	logger.Debug("environment ready",
		"history", cfg.History.Enabled,
		"driver", cfg.History.Driver,
		"metrics", cfg.Telemetry.Metrics.Enabled,
		"tracing", tracer.Enabled(),
	)

	return env, nil
}

// runner creates a solver runner wired to the environment.
func (e *environment) runner() (*solver.Runner, error) {
	reg, err := solver.NewRegistryFromConfig(&e.cfg.Puzzles, e.metrics)
	if err != nil {
		return nil, cli.NewConfigError("puzzles", err.Error())
	}

	return solver.NewRunner(reg,
		solver.WithHistory(e.history),
		solver.WithMetrics(e.metrics),
		solver.WithTracer(e.tracer),
		solver.WithLogger(e.logger),
	), nil
}

// flushMetrics writes the metrics textfile when one is configured.
func (e *environment) flushMetrics() {
	path := e.cfg.Telemetry.Metrics.Textfile
	if path == "" || !e.metrics.Enabled() {
		return
	}
	if err := e.metrics.WriteTextfile(path); err != nil {
		e.logger.Warn("failed to write metrics textfile", "path", path, "error", err)
	}
}

// close flushes metrics and spans and closes the history store.
func (e *environment) close(ctx context.Context) {
	e.flushMetrics()

	if err := e.tracer.Shutdown(ctx); err != nil {
		e.logger.Warn("failed to shut down tracer", "error", err)
	}

	if e.history != nil {
		if err := e.history.Close(); err != nil {
			e.logger.Warn("failed to close history", "error", err)
		}
	}
}

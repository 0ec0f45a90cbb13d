package solver

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
	"mercator-hq/advent/pkg/telemetry/logging"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/telemetry/tracing"
)

// Result describes one completed run.
type Result struct {
	RunID     string        `json:"run_id"`
	Puzzle    string        `json:"puzzle"`
	InputPath string        `json:"input_path,omitempty"`
	InputHash string        `json:"input_hash"`
	Answers   []Answer      `json:"answers"`
	Duration  time.Duration `json:"duration"`
	SolvedAt  time.Time     `json:"solved_at"`
}

// Runner executes solvers with logging, metrics, tracing and history.
type Runner struct {
	registry *Registry
	history  history.Storage
	metrics  *metrics.Collector
	tracer   *tracing.Tracer
	logger   *logging.Logger
	now      func() time.Time
	newID    func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithHistory stores every answer in s.
func WithHistory(s history.Storage) RunnerOption {
	return func(r *Runner) { r.history = s }
}

// WithMetrics records run metrics on c.
func WithMetrics(c *metrics.Collector) RunnerOption {
	return func(r *Runner) { r.metrics = c }
}

// WithTracer opens a span per run on t.
func WithTracer(t *tracing.Tracer) RunnerOption {
	return func(r *Runner) { r.tracer = t }
}

// WithLogger sets the run logger.
func WithLogger(l *logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a runner over reg. Without options, runs are neither
// stored, measured nor traced, and logs are discarded.
func NewRunner(reg *Registry, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: reg,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.tracer == nil {
		// A disabled tracer never fails to build.
		r.tracer, _ = tracing.New(&config.TracingConfig{})
	}
	if r.logger == nil {
		r.logger, _ = logging.New(logging.Config{Writer: io.Discard})
	}

	return r
}

// RunFile reads path and runs the named solver on its contents.
func (r *Runner) RunFile(ctx context.Context, name, path string) (*Result, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, puzzleerrors.New(puzzleerrors.KindIO, "failed to read input").
			WithCause(err).
			At(path, 0)
	}
	return r.Run(ctx, name, path, input)
}

// Run executes the named solver on input. path is informational and may be
// empty.
func (r *Runner) Run(ctx context.Context, name, path string, input []byte) (*Result, error) {
	s, ok := r.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown puzzle %q (available: %v)", name, r.registry.Names())
	}

	result := &Result{
		RunID:     r.newID(),
		Puzzle:    name,
		InputPath: path,
		InputHash: history.HashInput(input),
	}

	ctx = logging.WithRunID(ctx, result.RunID)
	ctx = logging.WithPuzzle(ctx, name)
	if path != "" {
		ctx = logging.WithInput(ctx, path)
	}

	ctx, span := r.tracer.Start(ctx, "solve "+name)
	defer span.End()
	tracing.SetRunAttributes(span, result.RunID, name)
	tracing.SetInputAttributes(span, path, len(input), result.InputHash)

	r.logger.DebugContext(ctx, "solving", "input_bytes", len(input))

	start := r.now()
	answers, err := s.Solve(ctx, input)
	result.Duration = r.now().Sub(start)
	result.SolvedAt = start

	if err != nil {
		errKind, _ := puzzleerrors.KindOf(err)
		r.metrics.RecordSolve(name, "error", result.Duration, len(input))
		tracing.SetErrorAttributes(span, err, string(errKind))
		tracing.SetStatus(span, err)
		r.logger.ErrorContext(ctx, "solve failed",
			"error", err,
			"error_kind", string(errKind),
			"duration", result.Duration,
		)
		return nil, err
	}

	result.Answers = answers
	r.metrics.RecordSolve(name, "success", result.Duration, len(input))
	for _, a := range answers {
		part := strconv.Itoa(a.Part)
		r.metrics.RecordAnswer(name, part, a.Value)
		tracing.AddAnswerEvent(span, part, a.Label, a.Value)
	}
	tracing.SetStatus(span, nil)

	r.logger.InfoContext(ctx, "solved",
		"answers", len(answers),
		"duration", result.Duration,
	)

	r.record(ctx, result)

	return result, nil
}

// record stores the answers of a successful run. History failures are
// logged and do not fail the run.
func (r *Runner) record(ctx context.Context, result *Result) {
	if r.history == nil || len(result.Answers) == 0 {
		return
	}

	records := make([]*history.Record, len(result.Answers))
	for i, a := range result.Answers {
		records[i] = &history.Record{
			ID:        r.newID(),
			RunID:     result.RunID,
			Puzzle:    result.Puzzle,
			Part:      a.Part,
			Label:     a.Label,
			Value:     a.Value,
			InputPath: result.InputPath,
			InputHash: result.InputHash,
			SolvedAt:  result.SolvedAt,
		}
	}

	if err := r.history.Store(ctx, records...); err != nil {
		r.logger.WarnContext(ctx, "failed to record answers", "error", err)
		return
	}
	r.metrics.RecordHistoryStored(len(records))

	if n, err := r.history.Count(ctx, nil); err == nil {
		r.metrics.UpdateHistorySize(n)
	}
}

package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
	"mercator-hq/advent/pkg/history/storage"
	puzzleerrors "mercator-hq/advent/pkg/puzzle/errors"
	"mercator-hq/advent/pkg/telemetry/logging"
	"mercator-hq/advent/pkg/telemetry/metrics"
	"mercator-hq/advent/pkg/telemetry/tracing"
)

var fixedNow = time.Date(2020, 12, 3, 5, 0, 0, 0, time.UTC)

type runnerFixture struct {
	runner   *Runner
	store    *storage.MemoryStorage
	registry *prometheus.Registry
	spans    *tracetest.InMemoryExporter
	logs     *bytes.Buffer
}

func newRunnerFixture(t *testing.T, solvers ...Solver) *runnerFixture {
	t.Helper()

	cfg := config.Default()
	promRegistry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, promRegistry)

	reg := NewRegistry()
	if len(solvers) == 0 {
		solvers = []Solver{
			&ExpenseSolver{},
			&PasswordsSolver{Metrics: collector},
			&TobogganSolver{Metrics: collector},
		}
	}
	for _, s := range solvers {
		if err := reg.Register(s); err != nil {
			t.Fatal(err)
		}
	}

	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.New(&config.TracingConfig{
		Enabled:     true,
		Sampler:     tracing.SamplerAlways,
		ServiceName: "advent-test",
	}, tracing.WithExporter(exporter))
	if err != nil {
		t.Fatalf("tracing.New() error = %v", err)
	}
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	logs := &bytes.Buffer{}
	logger, err := logging.New(logging.Config{
		Level:          "debug",
		Format:         "json",
		RedactSubjects: true,
		Writer:         logs,
	})
	if err != nil {
		t.Fatal(err)
	}

	store := storage.NewMemoryStorage()

	return &runnerFixture{
		runner: NewRunner(reg,
			WithHistory(store),
			WithMetrics(collector),
			WithTracer(tracer),
			WithLogger(logger),
			WithClock(func() time.Time { return fixedNow }),
		),
		store:    store,
		registry: promRegistry,
		spans:    exporter,
		logs:     logs,
	}
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunner_RunFile(t *testing.T) {
	f := newRunnerFixture(t)
	path := writeInput(t, tobogganSample)

	result, err := f.runner.RunFile(context.Background(), "toboggan", path)
	if err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID is empty")
	}
	if result.Puzzle != "toboggan" || result.InputPath != path {
		t.Errorf("result = %+v", result)
	}
	if result.InputHash != history.HashInput([]byte(tobogganSample)) {
		t.Errorf("InputHash = %q", result.InputHash)
	}
	if !result.SolvedAt.Equal(fixedNow) {
		t.Errorf("SolvedAt = %v, want %v", result.SolvedAt, fixedNow)
	}
	if len(result.Answers) != 2 || result.Answers[0].Value != 7 || result.Answers[1].Value != 336 {
		t.Errorf("Answers = %+v, want 7 and 336", result.Answers)
	}

	records, err := f.store.Query(context.Background(), &history.Query{RunID: result.RunID, Oldest: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("stored %d records, want 2", len(records))
	}
	for i, r := range records {
		if r.Puzzle != "toboggan" || r.InputHash != result.InputHash || r.InputPath != path {
			t.Errorf("record %d = %+v", i, r)
		}
		if r.ID == "" || r.ID == result.RunID {
			t.Errorf("record %d ID = %q, want a fresh ID", i, r.ID)
		}
	}
}

func TestRunner_Metrics(t *testing.T) {
	f := newRunnerFixture(t)
	ctx := context.Background()

	if _, err := f.runner.Run(ctx, "passwords", "", []byte(passwordsSample)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := f.runner.Run(ctx, "expense", "", []byte("1\n2\n")); err == nil {
		t.Fatal("Run() expense without solution succeeded")
	}

	expected := `
# HELP advent_solver_solves_total Total number of solve runs
# TYPE advent_solver_solves_total counter
advent_solver_solves_total{puzzle="expense",status="error"} 1
advent_solver_solves_total{puzzle="passwords",status="success"} 1
`
	if err := testutil.GatherAndCompare(f.registry, strings.NewReader(expected), "advent_solver_solves_total"); err != nil {
		t.Error(err)
	}

	expected = `
# HELP advent_solver_answer Latest answer computed for a puzzle part
# TYPE advent_solver_answer gauge
advent_solver_answer{part="1",puzzle="passwords"} 2
advent_solver_answer{part="2",puzzle="passwords"} 1
`
	if err := testutil.GatherAndCompare(f.registry, strings.NewReader(expected), "advent_solver_answer"); err != nil {
		t.Error(err)
	}

	expected = `
# HELP advent_solver_history_stored_total Total number of answer records stored
# TYPE advent_solver_history_stored_total counter
advent_solver_history_stored_total 2
`
	if err := testutil.GatherAndCompare(f.registry, strings.NewReader(expected), "advent_solver_history_stored_total"); err != nil {
		t.Error(err)
	}

	count, err := testutil.GatherAndCount(f.registry, "advent_solver_entries_evaluated_total")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("entries_evaluated_total series = %d, want 2 (one per kind)", count)
	}
}

func TestRunner_Spans(t *testing.T) {
	f := newRunnerFixture(t)

	result, err := f.runner.Run(context.Background(), "passwords", "", []byte(passwordsSample))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	spans := f.spans.GetSpans()
	if len(spans) != 3 {
		t.Fatalf("exported %d spans, want 3", len(spans))
	}

	root := spans[len(spans)-1]
	if root.Name != "solve passwords" {
		t.Errorf("root span = %q, want %q", root.Name, "solve passwords")
	}
	for _, child := range spans[:2] {
		if child.Name != "passwords.evaluate" {
			t.Errorf("child span = %q", child.Name)
		}
		if child.Parent.SpanID() != root.SpanContext.SpanID() {
			t.Errorf("span %q is not a child of the run span", child.Name)
		}
	}

	var runID string
	for _, a := range root.Attributes {
		if string(a.Key) == tracing.AttrRunID {
			runID = a.Value.AsString()
		}
	}
	if runID != result.RunID {
		t.Errorf("span run id = %q, want %q", runID, result.RunID)
	}

	answers := 0
	for _, e := range root.Events {
		if e.Name == "answer" {
			answers++
		}
	}
	if answers != 2 {
		t.Errorf("answer events = %d, want 2", answers)
	}
}

func TestRunner_SolveError(t *testing.T) {
	f := newRunnerFixture(t)

	_, err := f.runner.Run(context.Background(), "toboggan", "grid.txt", []byte("...\n..\n"))
	if !errors.Is(err, puzzleerrors.ErrInconsistentWidth) {
		t.Fatalf("Run() error = %v, want inconsistent width", err)
	}

	n, _ := f.store.Count(context.Background(), nil)
	if n != 0 {
		t.Errorf("stored %d records after failure, want 0", n)
	}

	spans := f.spans.GetSpans()
	root := spans[len(spans)-1]
	if root.Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", root.Status.Code)
	}

	var entry map[string]any
	lines := strings.Split(strings.TrimSpace(f.logs.String()), "\n")
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("last log line is not JSON: %v", err)
	}
	if entry["msg"] != "solve failed" || entry["error_kind"] != "inconsistent_width" {
		t.Errorf("log entry = %v", entry)
	}
	if entry["puzzle"] != "toboggan" || entry["input"] != "grid.txt" || entry["run_id"] == nil {
		t.Errorf("log entry missing run fields: %v", entry)
	}
}

func TestRunner_RedactsSubjectsInErrors(t *testing.T) {
	f := newRunnerFixture(t)

	_, err := f.runner.Run(context.Background(), "passwords", "", []byte("1-3 a: abcde\n1-3 a:topsecret\n"))
	if !errors.Is(err, puzzleerrors.ErrMalformedEntry) {
		t.Fatalf("Run() error = %v, want malformed entry", err)
	}
	if strings.Contains(f.logs.String(), "topsecret") {
		t.Errorf("logs contain a password subject:\n%s", f.logs.String())
	}
}

func TestRunner_UnknownPuzzle(t *testing.T) {
	f := newRunnerFixture(t)

	_, err := f.runner.Run(context.Background(), "day25", "", nil)
	if err == nil || !strings.Contains(err.Error(), "unknown puzzle") {
		t.Errorf("Run() error = %v, want unknown puzzle", err)
	}
}

func TestRunner_MissingFile(t *testing.T) {
	f := newRunnerFixture(t)

	_, err := f.runner.RunFile(context.Background(), "expense", filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, puzzleerrors.ErrIO) {
		t.Errorf("RunFile() error = %v, want io error", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("RunFile() error = %v, want to wrap os.ErrNotExist", err)
	}
}

type brokenStorage struct {
	history.Storage
}

func (brokenStorage) Store(context.Context, ...*history.Record) error {
	return errors.New("database is locked")
}

func TestRunner_HistoryFailureDoesNotFailRun(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(&stubSolver{name: "stub", answers: []Answer{{Part: 1, Label: "x", Value: 42}}})

	runner := NewRunner(reg, WithHistory(brokenStorage{storage.NewMemoryStorage()}))

	result, err := runner.Run(context.Background(), "stub", "", []byte("input"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Answers[0].Value != 42 {
		t.Errorf("Answers = %+v", result.Answers)
	}
}

func TestRunner_NoOptions(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(&ExpenseSolver{})

	result, err := NewRunner(reg).Run(context.Background(), "expense", "", []byte(expenseSample))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Answers[0].Value != 514579 {
		t.Errorf("Answers = %+v", result.Answers)
	}
}

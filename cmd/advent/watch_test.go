package main

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/telemetry/health"
	"mercator-hq/advent/pkg/telemetry/logging"
	"mercator-hq/advent/pkg/telemetry/metrics"
)

func TestWatchSolvesBeforeWatching(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stdout, _, err := executeCommandContext(t, ctx, nil, "watch", "passwords", "toboggan")
	if err != nil {
		t.Fatalf("watch error = %v", err)
	}

	for _, want := range []string{
		"Matching entries (count): 2\n",
		"Trees encountered: 7\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("watch output missing %q:\n%s", want, stdout)
		}
	}
}

func TestWatchRejectsUnknownPuzzle(t *testing.T) {
	_, _, err := executeCommand(t, nil, "watch", "day9")
	if err == nil {
		t.Fatal("watch succeeded, want error")
	}
}

func TestServeMetrics(t *testing.T) {
	logger, err := logging.New(logging.Config{Writer: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	env := &environment{
		logger:  logger,
		metrics: metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil),
	}
	env.metrics.RecordSolve("expense", "success", time.Millisecond, 42)

	checker := health.New(time.Second)
	tracker := health.NewSolveTracker()
	checker.RegisterCheck("solve:expense", tracker.Check("expense"))
	tracker.Record("expense", nil)

	addr, shutdown, err := serveMetrics(env, checker, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("serveMetrics() error = %v", err)
	}
	defer shutdown()

	resp, err := http.Get("http://" + addr + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `advent_solver_solves_total{puzzle="expense",status="success"} 1`) {
		t.Errorf("metrics body missing solve counter:\n%s", body)
	}

	for _, path := range []string{"/health", "/ready", "/version"} {
		resp, err := http.Get("http://" + addr + path)
		if err != nil {
			t.Fatalf("GET %s error = %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestReloadRunner(t *testing.T) {
	cfg := testConfig(t)
	logger, err := logging.New(logging.Config{Writer: io.Discard})
	if err != nil {
		t.Fatal(err)
	}
	env := &environment{cfg: cfg, logger: logger}

	origCfgFile := cfgFile
	t.Cleanup(func() {
		cfgFile = origCfgFile
		config.SetConfig(nil)
	})
	cfgFile = writeFile(t, t.TempDir(), "advent.yaml", `
puzzles:
  passwords:
    input: elsewhere.txt
    kinds: [position]
`)

	runner, err := reloadRunner(env)
	if err != nil {
		t.Fatalf("reloadRunner() error = %v", err)
	}
	if env.cfg.Puzzles.Passwords.Input != cfg.Puzzles.Passwords.Input {
		t.Errorf("input path changed to %q", env.cfg.Puzzles.Passwords.Input)
	}

	result, err := runner.RunFile(context.Background(), "passwords", env.cfg.Puzzles.Passwords.Input)
	if err != nil {
		t.Fatalf("RunFile() error = %v", err)
	}
	if len(result.Answers) != 1 || result.Answers[0].Value != 1 {
		t.Errorf("answers = %+v, want only the position count 1", result.Answers)
	}

	cfgFile = writeFile(t, t.TempDir(), "advent.yaml", "puzzles: {passwords: {kinds: [xor]}}\n")
	if _, err := reloadRunner(env); err == nil {
		t.Error("reloadRunner() with invalid kinds succeeded, want error")
	}
	if got := env.cfg.Puzzles.Passwords.Kinds; len(got) != 1 || got[0] != "position" {
		t.Errorf("kinds after failed reload = %v, want [position]", got)
	}
}

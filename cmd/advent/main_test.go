package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mercator-hq/advent/pkg/config"
)

const (
	expenseSample = "1721\n979\n366\n299\n675\n1456\n"

	passwordsSample = "1-3 a: abcde\n1-3 b: cdefg\n2-9 c: ccccccccc\n"

	tobogganSample = `..##.......
#...#...#..
.#....#..#.
..#.#...#.#
.#...##..#.
..#.##.....
.#.#.#....#
.#........#
#.##...#...
#...##....#
.#..#...#.#
`
)

// testConfig returns defaults pointing at sample inputs in a temporary
// directory, with history in a pure Go SQLite database there.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Puzzles.Expense.Input = writeFile(t, dir, "day1.txt", expenseSample)
	cfg.Puzzles.Passwords.Input = writeFile(t, dir, "day2.txt", passwordsSample)
	cfg.Puzzles.Toboggan.Input = writeFile(t, dir, "day3.txt", tobogganSample)
	cfg.History.Driver = "sqlite"
	cfg.History.Path = filepath.Join(dir, "data", "history.db")

	return cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// executeCommand runs the root command with args against cfg and returns
// what it wrote to stdout and stderr.
func executeCommand(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandContext(t, context.Background(), cfg, args...)
}

func executeCommandContext(t *testing.T, ctx context.Context, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	if cfg == nil {
		cfg = testConfig(t)
	}

	prevLogger := slog.Default()
	config.SetConfig(cfg)
	t.Cleanup(func() {
		config.SetConfig(nil)
		slog.SetDefault(prevLogger)
	})

	resetCommands(rootCmd, ctx)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// resetCommands restores every flag of cmd and its children to its default
// and hands them ctx, so that one test's state does not leak into the next.
// Cobra only propagates a context to subcommands that have none yet.
func resetCommands(cmd *cobra.Command, ctx context.Context) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}

	cmd.SetContext(ctx)
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetCommands(c, ctx)
	}
}

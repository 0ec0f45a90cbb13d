package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"mercator-hq/advent/pkg/cli"
	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/solver"
	"mercator-hq/advent/pkg/telemetry/tracing"
	"mercator-hq/advent/pkg/toboggan"
)

// puzzleNames lists the registered puzzles in solving order.
var puzzleNames = []string{"expense", "passwords", "toboggan"}

var solveFlags struct {
	input     string
	format    string
	target    int
	kinds     []string
	keepGoing bool
	slope     string
	routes    []string
	noHistory bool
	progress  bool
}

var solveCmd = &cobra.Command{
	Use:   "solve [expense|passwords|toboggan|all]...",
	Short: "Solve puzzles and record the answers",
	Long: `Solve one or more puzzles and print their answers.

Without arguments (or with "all") every puzzle is solved using the input
files named in the configuration. Flags override the configured puzzle
parameters for this run only.

Examples:
  # Solve everything
  advent solve

  # Solve the password puzzle from a specific file, skipping bad lines
  advent solve passwords --input day2.txt --keep-going

  # Only the position rule
  advent solve passwords --kind position

  # Toboggan with custom slopes
  advent solve toboggan --slope 3,1 --route 1,1 --route 1,2

  # Machine readable output
  advent solve --format json`,
	ValidArgs: append(slices.Clone(puzzleNames), "all"),
	RunE:      runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveFlags.input, "input", "i", "", "input file (requires exactly one puzzle)")
	solveCmd.Flags().StringVarP(&solveFlags.format, "format", "f", "text", "output format: text, json, csv")
	solveCmd.Flags().IntVar(&solveFlags.target, "target", config.DefaultExpenseTarget, "expense: sum the entries must reach")
	solveCmd.Flags().StringSliceVar(&solveFlags.kinds, "kind", nil, "passwords: rule interpretations (count, position)")
	solveCmd.Flags().BoolVar(&solveFlags.keepGoing, "keep-going", false, "passwords: skip malformed lines instead of failing")
	solveCmd.Flags().StringVar(&solveFlags.slope, "slope", "", "toboggan: slope of the first answer as right,down")
	solveCmd.Flags().StringArrayVar(&solveFlags.routes, "route", nil, "toboggan: slope for the product answer as right,down (repeatable)")
	solveCmd.Flags().BoolVar(&solveFlags.noHistory, "no-history", false, "do not record answers")
	solveCmd.Flags().BoolVar(&solveFlags.progress, "progress", false, "show progress on stderr")
}

func runSolve(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(solveFlags.format)
	if err != nil {
		return err
	}

	names, err := selectPuzzles(args)
	if err != nil {
		return err
	}
	if solveFlags.input != "" && len(names) != 1 {
		return cli.NewConfigError("input", "--input requires exactly one puzzle")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applySolveFlags(cmd, cfg); err != nil {
		return err
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

	ctx := tracing.FromEnvironment(cmd.Context())

	var progress cli.ProgressReporter
	if solveFlags.progress {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
		progress.Start(int64(len(names)))
	}

	results := make([]*solver.Result, 0, len(names))
	for i, name := range names {
		path := solveFlags.input
		if path == "" {
			path, _ = solver.InputPath(&cfg.Puzzles, name)
		}

		result, err := runner.RunFile(ctx, name, path)
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return cli.NewCommandError("solve", fmt.Errorf("%s: %w", name, err))
		}
		results = append(results, result)

		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	var data any = results
	if len(results) == 1 {
		data = results[0]
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), data)
}

// selectPuzzles resolves command arguments to puzzle names. No arguments
// and "all" select every puzzle; duplicates are dropped.
func selectPuzzles(args []string) ([]string, error) {
	if len(args) == 0 {
		return slices.Clone(puzzleNames), nil
	}

	var names []string
	for _, arg := range args {
		if arg == "all" {
			return slices.Clone(puzzleNames), nil
		}
		if !slices.Contains(puzzleNames, arg) {
			return nil, cli.NewConfigError("puzzle", fmt.Sprintf("unknown puzzle %q (valid: %v)", arg, puzzleNames))
		}
		if !slices.Contains(names, arg) {
			names = append(names, arg)
		}
	}
	return names, nil
}

// applySolveFlags copies explicitly set flags onto cfg.
func applySolveFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("target") {
		cfg.Puzzles.Expense.Target = solveFlags.target
	}
	if flags.Changed("kind") {
		cfg.Puzzles.Passwords.Kinds = slices.Clone(solveFlags.kinds)
	}
	if flags.Changed("keep-going") {
		cfg.Puzzles.Passwords.KeepGoing = solveFlags.keepGoing
	}
	if flags.Changed("slope") {
		r, err := toboggan.ParseRoute(solveFlags.slope)
		if err != nil {
			return cli.NewConfigError("slope", err.Error())
		}
		cfg.Puzzles.Toboggan.Slope = config.RouteConfig{Right: r.Right, Down: r.Down}
	}
	if flags.Changed("route") {
		routes := make([]config.RouteConfig, 0, len(solveFlags.routes))
		for _, s := range solveFlags.routes {
			r, err := toboggan.ParseRoute(s)
			if err != nil {
				return cli.NewConfigError("route", err.Error())
			}
			routes = append(routes, config.RouteConfig{Right: r.Right, Down: r.Down})
		}
		cfg.Puzzles.Toboggan.Routes = routes
	}
	if solveFlags.noHistory {
		cfg.History.Enabled = false
	}

	return nil
}

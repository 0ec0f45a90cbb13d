package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/advent/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "advent",
	Short: "Advent - puzzle solvers with an answer history",
	Long: `Advent parses puzzle inputs, computes their answers and records every
answer it produces.

Puzzles:
  - expense:   entries of an expense report that sum to 2020
  - passwords: password entries valid under the count and position rules
  - toboggan:  trees met along slopes through a repeating grid

Answers are printed as text, JSON or CSV and stored in a SQLite history
database unless history is disabled in the configuration.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/advent/pkg/cli"
	"mercator-hq/advent/pkg/history"
	"mercator-hq/advent/pkg/history/retention"
)

var historyFlags struct {
	puzzle     string
	runID      string
	since      string
	limit      int
	offset     int
	oldest     bool
	format     string
	days       int
	maxRecords int64
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune recorded answers",
	Long: `Inspect and prune the answer history.

Every successful solve records its answers together with the run ID, the
input path and the SHA-256 of the input. The history command lists those
records and removes old ones.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded answers",
	Long: `List recorded answers, newest first.

Examples:
  # Last 20 answers
  advent history list

  # Toboggan answers of the past day as JSON
  advent history list --puzzle toboggan --since 24h --format json

  # All answers of one run
  advent history list --run 4f1c2a9e-...`,
	Args: cobra.NoArgs,
	RunE: listHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old answers",
	Long: `Apply the retention policy once: delete answers older than the
retention period, then the oldest answers beyond the record cap.

Examples:
  # Use the configured retention
  advent history prune

  # Keep one week and at most 1000 answers
  advent history prune --days 7 --max-records 1000`,
	Args: cobra.NoArgs,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().StringVar(&historyFlags.puzzle, "puzzle", "", "filter by puzzle")
	historyListCmd.Flags().StringVar(&historyFlags.runID, "run", "", "filter by run ID")
	historyListCmd.Flags().StringVar(&historyFlags.since, "since", "", "only answers newer than a duration (24h) or an RFC3339 time")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of answers (0 for all)")
	historyListCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "skip this many answers")
	historyListCmd.Flags().BoolVar(&historyFlags.oldest, "oldest", false, "list oldest first")
	historyListCmd.Flags().StringVarP(&historyFlags.format, "format", "f", "text", "output format: text, json, csv")

	historyPruneCmd.Flags().IntVar(&historyFlags.days, "days", 0, "retention period in days (uses config if not specified)")
	historyPruneCmd.Flags().Int64Var(&historyFlags.maxRecords, "max-records", 0, "maximum answers to keep (uses config if not specified)")
}

func listHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(historyFlags.format)
	if err != nil {
		return err
	}
	if historyFlags.limit < 0 {
		return cli.NewConfigError("limit", "must be non-negative")
	}
	if historyFlags.offset < 0 {
		return cli.NewConfigError("offset", "must be non-negative")
	}

	query := &history.Query{
		Puzzle: historyFlags.puzzle,
		RunID:  historyFlags.runID,
		Oldest: historyFlags.oldest,
		Limit:  historyFlags.limit,
		Offset: historyFlags.offset,
	}
	if historyFlags.since != "" {
		since, err := parseSince(historyFlags.since, time.Now())
		if err != nil {
			return cli.NewConfigError("since", err.Error())
		}
		query.Since = &since
	}

	env, err := historyEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close(context.WithoutCancel(cmd.Context()))

	records, err := env.history.Query(cmd.Context(), query)
	if err != nil {
		return cli.NewCommandError("history list", err)
	}

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), records)
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	if historyFlags.days < 0 {
		return cli.NewConfigError("days", "must be non-negative")
	}
	if historyFlags.maxRecords < 0 {
		return cli.NewConfigError("max-records", "must be non-negative")
	}

	env, err := historyEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close(context.WithoutCancel(cmd.Context()))

	retentionCfg := retention.FromConfig(env.cfg.History.Retention)
	if cmd.Flags().Changed("days") {
		retentionCfg.RetentionDays = historyFlags.days
	}
	if cmd.Flags().Changed("max-records") {
		retentionCfg.MaxRecords = historyFlags.maxRecords
	}

	pruner := retention.NewPruner(env.history, retentionCfg, retention.WithRecorder(env.metrics))
	deleted, err := pruner.Prune(cmd.Context())
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}

	remaining, err := env.history.Count(cmd.Context(), nil)
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	env.metrics.UpdateHistorySize(remaining)

	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d answers, %d remaining\n", deleted, remaining)
	return nil
}

// historyEnvironment builds an environment whose history store is open.
func historyEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, cli.NewConfigError("history.enabled", "answer history is disabled")
	}
	return newEnvironment(cmd, cfg)
}

// parseSince accepts a duration relative to now or an RFC3339 time.
func parseSince(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("duration %q must be positive", s)
		}
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither a duration nor an RFC3339 time", s)
	}
	return t, nil
}

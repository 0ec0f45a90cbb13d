package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/advent/pkg/config"
	"mercator-hq/advent/pkg/history"
)

// Prune reasons reported to the metrics hook.
const (
	ReasonAge        = "age"
	ReasonMaxRecords = "max_records"
)

// DefaultDeleteBatchSize bounds the number of IDs bound into a single delete
// statement. SQLite caps the number of host parameters per statement.
const DefaultDeleteBatchSize = 500

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain answers.
	// 0 means keep answers forever.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// MaxRecords is the maximum number of answers to keep.
	// 0 means unlimited.
	MaxRecords int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: config.DefaultHistoryRetentionDays,
		PruneSchedule: config.DefaultHistoryRetentionPrune,
		MaxRecords:    config.DefaultHistoryRetentionMaxRec,
	}
}

// FromConfig converts the retention section of the history configuration.
func FromConfig(cfg config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		PruneSchedule: cfg.Schedule,
		MaxRecords:    cfg.MaxRecords,
	}
}

// Recorder receives pruning counts. *metrics.Collector satisfies it.
type Recorder interface {
	RecordHistoryPruned(reason string, n int64)
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithRecorder reports deletions to r.
func WithRecorder(r Recorder) Option {
	return func(p *Pruner) {
		p.recorder = r
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) {
		p.now = now
	}
}

// WithBatchSize sets how many of the oldest answers are deleted per
// statement when pruning by count. Values below 1 are ignored.
func WithBatchSize(n int) Option {
	return func(p *Pruner) {
		if n > 0 {
			p.batchSize = n
		}
	}
}

// Pruner enforces retention policies on answer records.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	recorder  Recorder
	now       func() time.Time
	batchSize int
	scheduler *Scheduler
}

// NewPruner creates a new retention pruner.
func NewPruner(storage history.Storage, cfg *Config, opts ...Option) *Pruner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	pruner := &Pruner{
		storage:   storage,
		config:    cfg,
		logger:    slog.Default().With("component", "history.retention"),
		now:       time.Now,
		batchSize: DefaultDeleteBatchSize,
	}
	for _, opt := range opts {
		opt(pruner)
	}

	pruner.scheduler = NewScheduler(pruner)

	return pruner
}

// Prune deletes answers older than the retention period, then the oldest
// answers beyond MaxRecords. Returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		p.record(ReasonAge, deleted)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		p.record(ReasonMaxRecords, deleted)
	}

	if totalDeleted == 0 {
		p.logger.Debug("no answers pruned",
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	} else {
		p.logger.Info("history pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	// Until is inclusive; step back so answers exactly at the cutoff survive.
	until := cutoff.Add(-time.Nanosecond)
	deleted, err := p.storage.Delete(ctx, &history.Query{Until: &until})
	if err != nil {
		return 0, history.NewRetentionError(ReasonAge, err)
	}

	return deleted, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, nil)
	if err != nil {
		return 0, history.NewRetentionError(ReasonMaxRecords, err)
	}

	if count <= p.config.MaxRecords {
		p.logger.Debug("answer count within limit",
			"current", count,
			"max", p.config.MaxRecords,
		)
		return 0, nil
	}

	excess := count - p.config.MaxRecords

	p.logger.Info("answer count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", excess,
	)

	var deleted int64
	for deleted < excess {
		batch := p.batchSize
		if left := excess - deleted; left < int64(batch) {
			batch = int(left)
		}

		oldest, err := p.storage.Query(ctx, &history.Query{Oldest: true, Limit: batch})
		if err != nil {
			return deleted, history.NewRetentionError(ReasonMaxRecords, err)
		}
		if len(oldest) == 0 {
			break
		}

		ids := make([]string, len(oldest))
		for i, r := range oldest {
			ids[i] = r.ID
		}

		n, err := p.storage.Delete(ctx, &history.Query{IDs: ids})
		if err != nil {
			return deleted, history.NewRetentionError(ReasonMaxRecords, err)
		}
		deleted += n
		if n == 0 {
			break
		}
	}

	return deleted, nil
}

func (p *Pruner) record(reason string, n int64) {
	if p.recorder != nil {
		p.recorder.RecordHistoryPruned(reason, n)
	}
	if n > 0 {
		p.logger.Info("pruned answers",
			"reason", reason,
			"deleted_count", n,
		)
	}
}

// Start starts the automatic pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the automatic pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}

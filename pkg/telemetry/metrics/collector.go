package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/advent/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric recorded while solving puzzles.
// It manages metric registration and provides a unified interface for the
// solver runner, the password evaluator and the history store.
//
// All Record methods are no-ops when metrics are disabled or the collector
// is nil.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	solveMetrics     *SolveMetrics
	passwordMetrics  *PasswordMetrics
	traversalMetrics *TraversalMetrics
	historyMetrics   *HistoryMetrics

	// Route labels come from user configuration.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "advent",
//		Subsystem: "solver",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets()
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(100),
	}

	c.solveMetrics = NewSolveMetrics(cfg, registry)
	c.passwordMetrics = NewPasswordMetrics(cfg, registry)
	c.traversalMetrics = NewTraversalMetrics(cfg, registry)
	c.historyMetrics = NewHistoryMetrics(cfg, registry)

	return c
}

// Enabled reports whether the collector records anything. A nil collector
// is disabled.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordSolve records metrics for a completed solve run.
//
// Parameters:
//   - puzzle: Solver name (e.g., "expense", "passwords")
//   - status: Run status ("success" or "error")
//   - duration: Time spent parsing and solving
//   - inputBytes: Size of the puzzle input
func (c *Collector) RecordSolve(puzzle, status string, duration time.Duration, inputBytes int) {
	if !c.Enabled() {
		return
	}

	c.solveMetrics.RecordSolve(puzzle, status, duration, inputBytes)
}

// RecordAnswer publishes the latest answer for a puzzle part.
func (c *Collector) RecordAnswer(puzzle, part string, value int64) {
	if !c.Enabled() {
		return
	}

	c.solveMetrics.RecordAnswer(puzzle, part, value)
}

// RecordEntries records how many password entries of a rule kind were
// evaluated and how many of them were valid.
func (c *Collector) RecordEntries(kind string, evaluated, valid int) {
	if !c.Enabled() {
		return
	}

	c.passwordMetrics.RecordEntries(kind, evaluated, valid)
}

// RecordParseError records a rejected input line by error kind
// (e.g., "malformed_entry", "index_out_of_range").
func (c *Collector) RecordParseError(errKind string) {
	if !c.Enabled() {
		return
	}

	c.passwordMetrics.RecordParseError(errKind)
}

// RecordTrees records the number of occupied cells met along a route.
// Routes beyond the cardinality limit are aggregated into "other".
func (c *Collector) RecordTrees(route string, trees int) {
	if !c.Enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(fmt.Sprintf("route:%s", route)) {
		route = "other"
	}

	c.traversalMetrics.RecordTrees(route, trees)
}

// RecordHistoryStored records answers written to the history store.
func (c *Collector) RecordHistoryStored(n int) {
	if !c.Enabled() {
		return
	}

	c.historyMetrics.RecordStored(n)
}

// RecordHistoryPruned records records removed by retention.
//
// Parameters:
//   - reason: Why records were removed ("age" or "max_records")
//   - n: Number of records removed
func (c *Collector) RecordHistoryPruned(reason string, n int64) {
	if !c.Enabled() {
		return
	}

	c.historyMetrics.RecordPruned(reason, n)
}

// UpdateHistorySize sets the current number of stored records.
func (c *Collector) UpdateHistorySize(n int64) {
	if !c.Enabled() {
		return
	}

	c.historyMetrics.UpdateSize(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}

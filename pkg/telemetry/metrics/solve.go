package metrics

import (
	"time"

	"mercator-hq/advent/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// SolveMetrics tracks solver runs.
//
// Metrics:
//   - advent_solver_solves_total: Total solve runs by puzzle and status
//   - advent_solver_solve_duration_seconds: Solve duration histogram
//   - advent_solver_input_bytes: Input size histogram
//   - advent_solver_answer: Latest answer per puzzle part
type SolveMetrics struct {
	solvesTotal   *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	inputBytes    *prometheus.HistogramVec
	answer        *prometheus.GaugeVec
}

// NewSolveMetrics creates and registers solve metrics with the provided registry.
func NewSolveMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *SolveMetrics {
	sm := &SolveMetrics{
		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "solves_total",
				Help:      "Total number of solve runs",
			},
			[]string{"puzzle", "status"},
		),

		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve runs in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"puzzle"},
		),

		inputBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "input_bytes",
				Help:      "Size of puzzle inputs in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
			[]string{"puzzle"},
		),

		answer: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "answer",
				Help:      "Latest answer computed for a puzzle part",
			},
			[]string{"puzzle", "part"},
		),
	}

	registry.MustRegister(
		sm.solvesTotal,
		sm.solveDuration,
		sm.inputBytes,
		sm.answer,
	)

	return sm
}

// RecordSolve records one solve run.
func (sm *SolveMetrics) RecordSolve(puzzle, status string, duration time.Duration, inputBytes int) {
	sm.solvesTotal.WithLabelValues(puzzle, status).Inc()
	sm.solveDuration.WithLabelValues(puzzle).Observe(duration.Seconds())

	if inputBytes > 0 {
		sm.inputBytes.WithLabelValues(puzzle).Observe(float64(inputBytes))
	}
}

// RecordAnswer sets the answer gauge for a puzzle part.
func (sm *SolveMetrics) RecordAnswer(puzzle, part string, value int64) {
	sm.answer.WithLabelValues(puzzle, part).Set(float64(value))
}

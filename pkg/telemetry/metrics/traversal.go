package metrics

import (
	"mercator-hq/advent/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// TraversalMetrics tracks grid traversals.
//
// Metrics:
//   - advent_solver_traversals_total: Traversals run by route
//   - advent_solver_trees_encountered: Occupied cells met on the latest traversal of a route
type TraversalMetrics struct {
	traversals *prometheus.CounterVec
	trees      *prometheus.GaugeVec
}

// NewTraversalMetrics creates and registers traversal metrics with the provided registry.
func NewTraversalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *TraversalMetrics {
	tm := &TraversalMetrics{
		traversals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "traversals_total",
				Help:      "Total number of grid traversals",
			},
			[]string{"route"},
		),

		trees: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "trees_encountered",
				Help:      "Occupied cells encountered on the latest traversal",
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(tm.traversals, tm.trees)

	return tm
}

// RecordTrees records one traversal of route.
func (tm *TraversalMetrics) RecordTrees(route string, trees int) {
	tm.traversals.WithLabelValues(route).Inc()
	tm.trees.WithLabelValues(route).Set(float64(trees))
}

package metrics

import (
	"mercator-hq/advent/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// PasswordMetrics tracks password policy evaluation.
//
// Metrics:
//   - advent_solver_entries_evaluated_total: Entries evaluated by rule kind
//   - advent_solver_entries_valid_total: Entries whose subject satisfied the rule
//   - advent_solver_parse_errors_total: Rejected input lines by error kind
type PasswordMetrics struct {
	entriesEvaluated *prometheus.CounterVec
	entriesValid     *prometheus.CounterVec
	parseErrors      *prometheus.CounterVec
}

// NewPasswordMetrics creates and registers password metrics with the provided registry.
func NewPasswordMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PasswordMetrics {
	pm := &PasswordMetrics{
		entriesEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entries_evaluated_total",
				Help:      "Total number of password entries evaluated",
			},
			[]string{"kind"},
		),

		entriesValid: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entries_valid_total",
				Help:      "Total number of password entries satisfying their rule",
			},
			[]string{"kind"},
		),

		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of rejected input lines",
			},
			[]string{"error_kind"},
		),
	}

	registry.MustRegister(
		pm.entriesEvaluated,
		pm.entriesValid,
		pm.parseErrors,
	)

	return pm
}

// RecordEntries adds evaluated and valid entry counts for a rule kind.
func (pm *PasswordMetrics) RecordEntries(kind string, evaluated, valid int) {
	pm.entriesEvaluated.WithLabelValues(kind).Add(float64(evaluated))
	pm.entriesValid.WithLabelValues(kind).Add(float64(valid))
}

// RecordParseError increments the error counter for an error kind.
func (pm *PasswordMetrics) RecordParseError(errKind string) {
	pm.parseErrors.WithLabelValues(errKind).Inc()
}

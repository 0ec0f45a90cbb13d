package metrics

import (
	"mercator-hq/advent/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// HistoryMetrics tracks the answer history store.
//
// Metrics:
//   - advent_solver_history_stored_total: Records written
//   - advent_solver_history_pruned_total: Records removed by retention, by reason
//   - advent_solver_history_records: Current number of stored records
type HistoryMetrics struct {
	storedTotal prometheus.Counter
	prunedTotal *prometheus.CounterVec
	records     prometheus.Gauge
}

// NewHistoryMetrics creates and registers history metrics with the provided registry.
func NewHistoryMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *HistoryMetrics {
	hm := &HistoryMetrics{
		storedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_stored_total",
				Help:      "Total number of answer records stored",
			},
		),

		prunedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_pruned_total",
				Help:      "Total number of answer records removed by retention",
			},
			[]string{"reason"},
		),

		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "history_records",
				Help:      "Current number of stored answer records",
			},
		),
	}

	registry.MustRegister(hm.storedTotal, hm.prunedTotal, hm.records)

	return hm
}

// RecordStored adds n stored records.
func (hm *HistoryMetrics) RecordStored(n int) {
	if n > 0 {
		hm.storedTotal.Add(float64(n))
	}
}

// RecordPruned adds n pruned records for reason.
func (hm *HistoryMetrics) RecordPruned(reason string, n int64) {
	if n > 0 {
		hm.prunedTotal.WithLabelValues(reason).Add(float64(n))
	}
}

// UpdateSize sets the record gauge.
func (hm *HistoryMetrics) UpdateSize(n int64) {
	hm.records.Set(float64(n))
}

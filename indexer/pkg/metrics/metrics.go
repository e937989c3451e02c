package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StoreBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_indexer_store_builds_total",
			Help: "Total number of indicator store builds",
		},
		[]string{"status"},
	)

	StoreBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "weo_indexer_store_build_duration_seconds",
			Help:    "Duration of indicator store builds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
	)

	TableRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weo_indexer_table_rows_total",
			Help: "Total number of table rows processed by outcome",
		},
		[]string{"outcome"}, // "built", "no_code", "no_data", "duplicate"
	)
)

// RecordStoreBuild records metrics for one store build.
func RecordStoreBuild(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreBuildsTotal.WithLabelValues(status).Inc()
	StoreBuildDuration.Observe(duration.Seconds())
}

// RecordTableRows adds n rows with the given outcome.
func RecordTableRows(outcome string, n int) {
	if n > 0 {
		TableRowsTotal.WithLabelValues(outcome).Add(float64(n))
	}
}

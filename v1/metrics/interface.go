package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector is the metrics surface of a migration run.
type MetricsCollector interface {
	// CollectionFinished counts a collection by outcome: migrated, skipped or failed.
	CollectionFinished(status string)

	// PointsCopied adds n uploaded points to the collection's counter.
	PointsCopied(collection string, n int)

	// ObserveBatch records how long one scroll-and-upload batch took.
	ObserveBatch(collection string, start time.Time)

	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

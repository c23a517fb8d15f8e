package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the migration metrics and the HTTP server exposing them.
type Metrics struct {
	// Server serves the registry on /metrics. It is started by the fx lifecycle.
	Server *http.Server

	// Registry is isolated from the global default registry.
	Registry *prometheus.Registry

	registerer prometheus.Registerer
	namespace  string

	collectionsTotal *prometheus.CounterVec
	pointsTotal      *prometheus.CounterVec
	batchDuration    *prometheus.HistogramVec
}

// NewMetrics creates an isolated registry, registers the migration metrics
// with the service label and builds the /metrics server.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	go m.Server.ListenAndServe()
//	m.CollectionFinished("migrated")
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	}

	m := &Metrics{
		Registry:   registry,
		registerer: registerer,
		namespace:  cfg.Namespace,
	}

	m.collectionsTotal = createCounterVec(cfg.Namespace, "collections_total", "Collections processed, by outcome", []string{"status"})
	m.pointsTotal = createCounterVec(cfg.Namespace, "points_total", "Points uploaded to the destination", []string{"collection"})
	m.batchDuration = createHistogramVec(cfg.Namespace, "batch_duration_seconds", "Duration of one scroll and upload batch", []string{"collection"}, prometheus.DefBuckets)

	registerer.MustRegister(
		m.collectionsTotal,
		m.pointsTotal,
		m.batchDuration,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}

// Package metrics exposes the Prometheus metrics of a migration run.
//
// Three metrics are registered on an isolated registry, prefixed with the
// configured namespace and labelled with the service name:
//
//	<namespace>_collections_total{status}             migrated, skipped or failed
//	<namespace>_points_total{collection}              points uploaded
//	<namespace>_batch_duration_seconds{collection}    one scroll plus upload
//
// With fx, FXModule starts the HTTP server on /metrics and stops it on
// shutdown:
//
//	app := fx.New(
//		fx.Supply(metrics.DefaultConfig()),
//		logger.FXModule,
//		metrics.FXModule,
//	)
//
// Without fx, build the metrics and serve them yourself:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	go m.Server.ListenAndServe()
//
// CreateCounter, CreateHistogram and CreateGauge register further metrics
// under the same namespace and label.
package metrics

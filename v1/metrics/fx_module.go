package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
)

// FXModule provides *Metrics and serves it for the lifetime of the app.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(metrics.DefaultConfig()),
//	    logger.FXModule,
//	    metrics.FXModule,
//	)
//
// Dependencies required by this module:
// - A metrics.Config instance
// - A *logger.Logger for startup and shutdown logs
var FXModule = fx.Module("metrics",
	fx.Provide(NewMetrics),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server on start and shuts it
// down gracefully on stop. An empty address disables the server.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log *logger.Logger) {
	if m.Server.Addr == "" {
		log.Info("Metrics server disabled", nil, nil)
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})

				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Error starting Prometheus metrics server", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Prometheus metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}

package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
)

// FXModule provides a *Tracer for migration spans and flushes it on stop.
// Unless Config.EnableExport is set the spans stay in process.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(tracer.DefaultConfig()),
//	    logger.FXModule,
//	    tracer.FXModule,
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies of NewClientWithDI.
type TracerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewClientWithDI builds the tracer from injected dependencies.
func NewClientWithDI(p TracerParams) *Tracer {
	return NewClient(p.Config, p.Logger)
}

// RegisterTracerLifecycle shuts the provider down on stop, exporting the
// spans of the last collection before the binary exits.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.tracer == nil {
				return nil
			}
			tracer.logger.Info("Flushing migration spans", nil, nil)
			return tracer.tracer.Shutdown(ctx)
		},
	})
}

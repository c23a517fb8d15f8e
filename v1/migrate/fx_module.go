package migrate

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/tracer"
)

// FXModule provides a *Migrator. Metrics and tracing are used when their
// modules are part of the app.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    tracer.FXModule,
//	    migrate.FXModule,
//	    fx.Invoke(func(m *migrate.Migrator) { ... }),
//	)
var FXModule = fx.Module("migrate",
	fx.Provide(NewMigratorWithDI),
)

// MigratorParams groups the dependencies of NewMigratorWithDI.
type MigratorParams struct {
	fx.In

	Logger  *logger.Logger
	Metrics *metrics.Metrics `optional:"true"`
	Tracer  *tracer.Tracer   `optional:"true"`
}

func NewMigratorWithDI(p MigratorParams) *Migrator {
	var recorder Recorder
	if p.Metrics != nil {
		recorder = p.Metrics
	}
	var tr Tracer
	if p.Tracer != nil {
		tr = p.Tracer
	}
	return NewMigrator(p.Logger, recorder, tr)
}

// Package logger provides the structured logger used by every component of
// the migration tool.
//
// It wraps zap with a small call style: a message, an optional error and any
// number of field maps.
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "qdrant-migrate",
//		EnableTracing: true,
//	})
//
//	log.Info("collection migrated", nil, map[string]interface{}{
//		"collection": "docs",
//		"points":     1200,
//	})
//
// The ...WithContext variants add trace_id and span_id from the OpenTelemetry
// span in the context when EnableTracing is set, so log lines can be joined
// with the spans the migrator records per collection and per batch:
//
//	ctx, span := tr.StartSpan(ctx, "migrate.collection")
//	defer span.End()
//	log.InfoWithContext(ctx, "copying points", nil, map[string]interface{}{"collection": name})
//
// Output is JSON on stderr with ISO8601 timestamps, the caller, the pid and
// the service name.
//
// Packages that log declare their own narrow Logger interface, which *Logger
// satisfies, and receive it through FXModule:
//
//	app := fx.New(
//		fx.Supply(logger.DefaultConfig()),
//		logger.FXModule,
//	)
package logger

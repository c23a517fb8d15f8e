package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides a *Logger built from the supplied Config and flushes it
// when the app stops. The migration binary also routes fx's own events
// through it.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(logger.DefaultConfig()),
//	    logger.FXModule,
//	)
var FXModule = fx.Module("logger",
	fx.Provide(NewLoggerClient),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs buffered entries on stop, so the final
// migration report reaches the output before the process exits.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr fails with EINVAL on Linux.
			_ = client.Zap.Sync()
			return nil
		},
	})
}

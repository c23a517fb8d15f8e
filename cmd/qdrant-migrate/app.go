package main

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/metrics"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/migrate"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/report"
	"github.com/Aleph-Alpha/qdrant-bridge/v1/tracer"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

// appOptions builds the fx graph of one run. dialer is replaced in tests.
func appOptions(cfg *Config, dialer Dialer) fx.Option {
	return fx.Options(
		fx.Supply(cfg, cfg.Logger, cfg.Metrics, cfg.Tracer, cfg.Report),
		fx.Supply(dialer),
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Zap}
		}),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		report.FXModule,
		migrate.FXModule,
		fx.Provide(NewEndpoints),
		fx.Invoke(RegisterRunner),
	)
}

type RunnerParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Config     *Config
	Logger     *logger.Logger
	Migrator   *migrate.Migrator
	Endpoints  *Endpoints
	Sink       report.Sink
}

// RegisterRunner starts the migration once the app is up and shuts the app
// down with an exit code when it is done.
func RegisterRunner(p RunnerParams) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code := run(ctx, p)
				if err := p.Shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					p.Logger.Error("Failed to shut down", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}

// run migrates, publishes the report and returns the process exit code.
// A failed publish is logged but does not fail a successful migration.
func run(ctx context.Context, p RunnerParams) int {
	opts := p.Config.Migrate.Options()
	p.Logger.Info("Migration requested", nil, map[string]interface{}{
		"collections":  opts.Collections,
		"on_collision": opts.OnCollision.String(),
		"batch_size":   opts.BatchSize,
	})

	rep, err := p.Migrator.Migrate(ctx, p.Endpoints.Source, p.Endpoints.Destination, opts)
	if rep != nil {
		if perr := p.Sink.Publish(ctx, rep); perr != nil {
			p.Logger.Warn("Failed to publish migration report", perr, nil)
		}
	}
	if err != nil {
		p.Logger.Error("Migration failed", err, nil)
		return exitFailed
	}
	return exitOK
}

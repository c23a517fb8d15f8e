package report

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qdrant-bridge/v1/logger"
)

// FXModule provides a Sink that always logs and additionally publishes to
// Kafka and RabbitMQ when they are enabled in Config.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(report.DefaultConfig()),
//	    logger.FXModule,
//	    report.FXModule,
//	)
var FXModule = fx.Module("report",
	fx.Provide(NewSink),
	fx.Invoke(RegisterSinkLifecycle),
)

// SinkParams groups the dependencies of NewSink.
type SinkParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewSink builds the configured sinks behind one MultiSink.
func NewSink(p SinkParams) (Sink, error) {
	sinks := []Sink{NewLogSink(p.Logger)}

	if p.Config.Kafka.Enabled {
		k, err := NewKafkaSink(p.Config.Kafka, p.Logger)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, k)
	}

	if p.Config.Rabbit.Enabled {
		r, err := NewRabbitSink(p.Config.Rabbit, p.Logger)
		if err != nil {
			_ = NewMultiSink(p.Logger, sinks...).Close()
			return nil, err
		}
		sinks = append(sinks, r)
	}

	return NewMultiSink(p.Logger, sinks...), nil
}

// RegisterSinkLifecycle closes the sinks when the application stops.
func RegisterSinkLifecycle(lc fx.Lifecycle, sink Sink, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("Closing report sinks", nil, nil)
			return sink.Close()
		},
	})
}

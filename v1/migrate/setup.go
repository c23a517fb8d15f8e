package migrate

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Recorder receives migration metrics.
type Recorder interface {
	CollectionFinished(status string)
	PointsCopied(collection string, n int)
	ObserveBatch(collection string, start time.Time)
}

// Tracer opens spans around collections and batches.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
	SetAttributes(span trace.Span, attrs map[string]interface{})
}

// Migrator copies collections between two Clients. It keeps no state
// between runs and is safe to reuse.
type Migrator struct {
	logger   Logger
	recorder Recorder
	tracer   Tracer
}

// NewMigrator creates a Migrator. recorder and tracer may be nil.
//
// Example:
//
//	m := migrate.NewMigrator(log, metrics, tracer)
//	rep, err := m.Migrate(ctx, source, dest, migrate.DefaultOptions().WithCollections("docs"))
func NewMigrator(logger Logger, recorder Recorder, tracer Tracer) *Migrator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if tracer == nil {
		tracer = nopTracer{}
	}
	return &Migrator{
		logger:   logger,
		recorder: recorder,
		tracer:   tracer,
	}
}

type nopRecorder struct{}

func (nopRecorder) CollectionFinished(string)      {}
func (nopRecorder) PointsCopied(string, int)       {}
func (nopRecorder) ObserveBatch(string, time.Time) {}

type nopTracer struct{}

func (nopTracer) StartSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

func (nopTracer) RecordErrorOnSpan(trace.Span, error) {}

func (nopTracer) SetAttributes(trace.Span, map[string]interface{}) {}

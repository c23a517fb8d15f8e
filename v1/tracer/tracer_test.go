package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func TestTracer_SpansAndAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tr := NewWithProvider(tp, nopLogger{})

	ctx, parent := tr.StartSpan(context.Background(), "migrate")
	_, child := tr.StartSpan(ctx, "migrate.collection")
	tr.SetAttributes(child, map[string]interface{}{
		"collection": "docs",
		"points":     uint64(12),
		"skipped":    false,
	})
	tr.RecordErrorOnSpan(child, errors.New("count mismatch"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	got := spans[0]
	assert.Equal(t, "migrate.collection", got.Name())
	assert.Equal(t, parent.SpanContext().SpanID(), got.Parent().SpanID())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Contains(t, got.Attributes(), attribute.String("collection", "docs"))
	assert.Contains(t, got.Attributes(), attribute.Int64("points", 12))
	assert.Contains(t, got.Attributes(), attribute.Bool("skipped", false))
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "exception", got.Events()[0].Name)
}

func TestTracer_GetCarrier(t *testing.T) {
	tr := NewClient(DefaultConfig(), nopLogger{})
	ctx, span := tr.StartSpan(context.Background(), "publish")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	assert.Contains(t, carrier, "traceparent")
}

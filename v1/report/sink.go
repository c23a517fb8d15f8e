package report

import (
	"context"
	"errors"
)

// Logger is the logging surface the sinks need.
//
//go:generate mockgen -source=sink.go -destination=mock_sink.go -package=report
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Sink receives a finished run report.
type Sink interface {
	Publish(ctx context.Context, r *Report) error
	Close() error
}

// ── Log Sink ─────────────────────────────────────────────────────────────────

// LogSink writes the summary and one line per collection to the logger.
type LogSink struct {
	logger Logger
}

func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, r *Report) error {
	for _, c := range r.Collections {
		fields := map[string]interface{}{
			"run_id":            r.RunID,
			"collection":        c.Name,
			"status":            string(c.Status),
			"replaced":          c.Replaced,
			"source_count":      c.SourceCount,
			"destination_count": c.DestinationCount,
			"batches":           c.Batches,
			"duration":          c.Duration.String(),
		}
		if c.Status == StatusFailed {
			s.logger.Error("Collection migration failed", errors.New(c.Error), fields)
			continue
		}
		s.logger.Info("Collection processed", nil, fields)
	}

	if r.Failed() {
		s.logger.Error("Migration run failed", nil, r.Fields())
		return nil
	}
	s.logger.Info("Migration run finished", nil, r.Fields())
	return nil
}

func (s *LogSink) Close() error { return nil }

// ── Multi Sink ───────────────────────────────────────────────────────────────

// MultiSink publishes to every sink in order. A failing sink does not stop
// the others; all failures are returned joined.
type MultiSink struct {
	sinks  []Sink
	logger Logger
}

func NewMultiSink(logger Logger, sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks, logger: logger}
}

func (m *MultiSink) Publish(ctx context.Context, r *Report) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Publish(ctx, r); err != nil {
			m.logger.Error("Failed to publish migration report", err, map[string]interface{}{
				"run_id": r.RunID,
			})
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

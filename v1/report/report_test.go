package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleReport() *Report {
	r := New("Skip", 100)
	r.Add(CollectionResult{Name: "a", Status: StatusMigrated, SourceCount: 5, DestinationCount: 5, Batches: 3})
	r.Add(CollectionResult{Name: "b", Status: StatusSkipped})
	r.Add(CollectionResult{Name: "c", Status: StatusFailed, Error: "count mismatch"})
	r.Finish(nil)
	return r
}

func TestReport_Summary(t *testing.T) {
	r := sampleReport()

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, 1, r.Count(StatusMigrated))
	assert.Equal(t, 1, r.Count(StatusSkipped))
	assert.Equal(t, 1, r.Count(StatusFailed))
	assert.Equal(t, []string{"b"}, r.Names(StatusSkipped))
	assert.True(t, r.Failed())
	assert.False(t, r.FinishedAt.Before(r.StartedAt))

	fields := r.Fields()
	assert.Equal(t, r.RunID, fields["run_id"])
	assert.Equal(t, 1, fields["failed"])
}

func TestReport_FinishWithError(t *testing.T) {
	r := New("Raise", 100)
	r.Finish(errors.New("collections already exist"))

	assert.True(t, r.Failed())
	assert.Equal(t, "collections already exist", r.Error)
}

func TestLogSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLog := NewMockLogger(ctrl)

	mockLog.EXPECT().Info("Collection processed", nil, gomock.Any()).Times(2)
	mockLog.EXPECT().Error("Collection migration failed", gomock.Any(), gomock.Any()).Times(1)
	mockLog.EXPECT().Error("Migration run failed", nil, gomock.Any()).Times(1)

	require.NoError(t, NewLogSink(mockLog).Publish(context.Background(), sampleReport()))
}

func TestMultiSink_PublishesToAllAndJoinsErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLog := NewMockLogger(ctrl)
	first := NewMockSink(ctrl)
	second := NewMockSink(ctrl)
	r := sampleReport()

	boom := errors.New("broker down")
	first.EXPECT().Publish(gomock.Any(), r).Return(boom)
	second.EXPECT().Publish(gomock.Any(), r).Return(nil)
	mockLog.EXPECT().Error("Failed to publish migration report", boom, gomock.Any()).Times(1)

	err := NewMultiSink(mockLog, first, second).Publish(context.Background(), r)
	require.ErrorIs(t, err, boom)

	first.EXPECT().Close().Return(nil)
	second.EXPECT().Close().Return(nil)
	require.NoError(t, NewMultiSink(mockLog, first, second).Close())
}

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSink_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLog := NewMockLogger(ctrl)
	mockLog.EXPECT().Info("Published migration report to kafka", nil, gomock.Any()).Times(1)

	w := &fakeWriter{}
	sink := NewKafkaSinkWithWriter(w, "reports", mockLog)
	r := sampleReport()

	require.NoError(t, sink.Publish(context.Background(), r))
	require.Len(t, w.messages, 1)
	assert.Equal(t, r.RunID, string(w.messages[0].Key))

	var decoded Report
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, r.RunID, decoded.RunID)
	assert.Len(t, decoded.Collections, 3)

	require.NoError(t, sink.Close())
	assert.True(t, w.closed)
}

func TestKafkaSink_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewKafkaSinkWithWriter(&fakeWriter{err: errors.New("leader not available")}, "reports", NewMockLogger(ctrl))

	err := sink.Publish(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reports")
}

func TestNewKafkaSink_RequiresBrokers(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := NewKafkaSink(KafkaConfig{Topic: "reports"}, NewMockLogger(ctrl))
	require.Error(t, err)
}

type fakePublisher struct {
	exchange, key string
	msg           amqp.Publishing
	closed        bool
}

func (p *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	p.exchange, p.key, p.msg = exchange, key, msg
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

func TestRabbitSink_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLog := NewMockLogger(ctrl)
	mockLog.EXPECT().Info("Published migration report to rabbit", nil, gomock.Any()).Times(1)

	p := &fakePublisher{}
	cfg := DefaultConfig().Rabbit
	cfg.ExchangeName = "migrations"
	sink := NewRabbitSinkWithPublisher(p, cfg, mockLog)
	r := sampleReport()

	require.NoError(t, sink.Publish(context.Background(), r))
	assert.Equal(t, "migrations", p.exchange)
	assert.Equal(t, DefaultRabbitRoutingKey, p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, r.RunID, p.msg.MessageId)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)
	assert.WithinDuration(t, r.FinishedAt, p.msg.Timestamp, time.Second)

	require.NoError(t, sink.Close())
	assert.True(t, p.closed)
}

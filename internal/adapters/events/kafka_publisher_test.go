package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenaware/screenaware/internal/core/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisher_PublishDataPoint(t *testing.T) {
	point := &domain.DataPoint{
		ID:           "dp-1",
		UserID:       "user-7",
		Timestamp:    time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		HabitInput:   domain.HabitInput{DailyScreenTimeHours: 6, StressLevel: 3, SleepQuality: 3},
		RiskLevel:    "Moderate",
		MoodRating:   3,
		ClusterLabel: domain.ClusterModerateUsage,
	}

	t.Run("Success: Should key by user and wrap the point", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := newKafkaPublisher(writer, nil)

		require.NoError(t, publisher.PublishDataPoint(context.Background(), point))

		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "user-7", string(msg.Key))
		assert.Equal(t, EventDataPoint, string(msg.Headers[0].Value))

		var event DataPointEvent
		require.NoError(t, json.Unmarshal(msg.Value, &event))
		assert.Equal(t, EventDataPoint, event.Type)
		assert.Equal(t, "dp-1", event.DataPoint.ID)
		assert.Equal(t, 6.0, event.DataPoint.DailyScreenTimeHours)
		assert.True(t, point.Timestamp.Equal(event.OccurredAt))
	})

	t.Run("Fail: Should wrap writer errors", func(t *testing.T) {
		writer := &fakeWriter{err: errors.New("leader not available")}
		publisher := newKafkaPublisher(writer, nil)

		err := publisher.PublishDataPoint(context.Background(), point)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "dp-1")
	})

	t.Run("Should close the writer", func(t *testing.T) {
		writer := &fakeWriter{}
		require.NoError(t, newKafkaPublisher(writer, nil).Close())
		assert.True(t, writer.closed)
	})
}

func TestNewKafkaPublisher(t *testing.T) {
	_, err := NewKafkaPublisher(KafkaConfig{}, nil)
	assert.Error(t, err)

	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.writer.(*kafka.Writer).Topic)
	_ = p.Close()
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishDataPoint(context.Background(), &domain.DataPoint{}))
}

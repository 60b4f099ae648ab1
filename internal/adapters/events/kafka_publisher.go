package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/screenaware/screenaware/internal/adapters/observability"
	"github.com/screenaware/screenaware/internal/core/domain"
)

const (
	DefaultTopic     = "screenaware.datapoints"
	EventDataPoint   = "datapoint.recorded"
	schemaVersion    = "1"
	headerEventType  = "event-type"
	headerSchemaVers = "schema-version"
)

var _ domain.EventPublisher = (*KafkaPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// DataPointEvent is the message value written for every recorded data point.
type DataPointEvent struct {
	Type          string            `json:"type"`
	SchemaVersion string            `json:"schema_version"`
	OccurredAt    time.Time         `json:"occurred_at"`
	DataPoint     *domain.DataPoint `json:"data_point"`
}

// KafkaPublisher writes data point events keyed by user id, so a user's
// events stay ordered within one partition.
type KafkaPublisher struct {
	writer  messageWriter
	metrics *observability.Metrics
}

func NewKafkaPublisher(cfg KafkaConfig, metrics *observability.Metrics) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("events: at least one broker is required")
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = DefaultTopic
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return newKafkaPublisher(writer, metrics), nil
}

func newKafkaPublisher(writer messageWriter, metrics *observability.Metrics) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, metrics: metrics}
}

func (p *KafkaPublisher) PublishDataPoint(ctx context.Context, point *domain.DataPoint) error {
	value, err := json.Marshal(DataPointEvent{
		Type:          EventDataPoint,
		SchemaVersion: schemaVersion,
		OccurredAt:    point.Timestamp,
		DataPoint:     point,
	})
	if err != nil {
		return fmt.Errorf("events: encode data point: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(point.UserID),
		Value: value,
		Time:  point.Timestamp,
		Headers: []kafka.Header{
			{Key: headerEventType, Value: []byte(EventDataPoint)},
			{Key: headerSchemaVers, Value: []byte(schemaVersion)},
		},
	})
	p.metrics.EventPublished(err == nil)
	if err != nil {
		return fmt.Errorf("events: write data point %s: %w", point.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher discards events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishDataPoint(context.Context, *domain.DataPoint) error {
	return nil
}

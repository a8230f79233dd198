package notify

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/example/fleetdesk/internal/ports/secondary"
)

// messageWriter is the subset of *kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink appends every notification to one topic, keyed by recipient so
// each actor's notifications stay ordered within a partition.
type KafkaSink struct {
	writer messageWriter
}

// NewKafkaSink creates a sink writing to topic on brokers.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Name implements secondary.NotificationSink.
func (s *KafkaSink) Name() string { return "kafka" }

// Publish implements secondary.NotificationSink.
func (s *KafkaSink) Publish(ctx context.Context, n *secondary.NotificationRecord) error {
	data, err := Encode(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.TargetKind + ":" + n.TargetID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
	})
}

// Close implements secondary.NotificationSink.
func (s *KafkaSink) Close() error { return s.writer.Close() }

var _ secondary.NotificationSink = (*KafkaSink)(nil)

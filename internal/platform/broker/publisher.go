package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"tavola/internal/modules/reservations/application/port"
)

// KafkaPublisher emits reservation lifecycle events to a Kafka topic. Events
// carry the {entity, action, resourceId, topic, metadata, data} shape consumed
// by downstream realtime gateways.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event port.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	message := kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	slog.Debug("event published",
		slog.String("entity", event.Entity),
		slog.String("action", event.Action),
		slog.String("resourceId", event.ResourceID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Fanout delivers each event to every target publisher. A failing target does
// not stop delivery to the rest; the first error is returned.
type Fanout []port.EventPublisher

func (f Fanout) Publish(ctx context.Context, event port.Event) error {
	var first error
	for _, target := range f {
		if err := target.Publish(ctx, event); err != nil {
			slog.Warn("event fanout target failed", slog.Any("error", err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Nop discards events. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, port.Event) error { return nil }

var (
	_ port.EventPublisher = (*KafkaPublisher)(nil)
	_ port.EventPublisher = (Fanout)(nil)
	_ port.EventPublisher = Nop{}
)

package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/segmentio/kafka-go"

	"tavola/internal/modules/reservations/application/port"
)

// KafkaConsumer reads reservation events written by other gateway instances
// so a local feed still sees changes made elsewhere.
type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

func (c *KafkaConsumer) Consume(ctx context.Context, handler func(port.Event) error) error {
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}
		event, ok := decodeEvent(m)
		if !ok {
			continue
		}
		slog.Info("kafka event consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", event.Entity),
			slog.String("action", event.Action),
			slog.String("resourceId", event.ResourceID),
		)
		if err := handler(event); err != nil {
			slog.Warn("kafka handler error", slog.Any("error", err))
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

func decodeEvent(m kafka.Message) (port.Event, bool) {
	var event port.Event
	if err := json.Unmarshal(m.Value, &event); err != nil {
		slog.Warn("kafka event discarded", slog.String("topic", m.Topic), slog.Any("error", err))
		return port.Event{}, false
	}
	if strings.TrimSpace(event.Entity) == "" {
		event.Entity = topicEntity(m.Topic)
	}
	if strings.TrimSpace(event.Action) == "" {
		event.Action = "unknown"
	}
	if strings.TrimSpace(event.Topic) == "" {
		event.Topic = event.Entity + "." + event.Action
	}
	return event, true
}

func topicEntity(topic string) string {
	if idx := strings.LastIndex(topic, "."); idx >= 0 {
		topic = topic[idx+1:]
	}
	return strings.TrimSpace(topic)
}

// StartKafkaBridge mirrors broker events into the target publisher, usually
// the websocket hub. With no brokers configured it does nothing.
func StartKafkaBridge(ctx context.Context, target port.EventPublisher, brokers []string, groupID string, topics []string) {
	if len(brokers) == 0 || target == nil {
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			defer consumer.Close()
			consumer.Consume(ctx, func(event port.Event) error {
				return target.Publish(ctx, event)
			})
		}(topic)
	}
}

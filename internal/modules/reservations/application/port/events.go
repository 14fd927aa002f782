package port

import "context"

// Event is the lifecycle notification emitted after a successful mutation.
// The shape matches what the realtime consumers expect on the wire.
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
}

// EventPublisher fans reservation lifecycle events out to interested parties
// (message broker, websocket feed). Publishing is best-effort: a failed
// publish never fails the mutation that triggered it.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

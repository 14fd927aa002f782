package broker

import (
	"context"
	"errors"
	"testing"

	"tavola/internal/modules/reservations/application/port"
)

type stubPublisher struct {
	events []port.Event
	err    error
}

func (s *stubPublisher) Publish(ctx context.Context, event port.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func TestFanout_DeliversToEveryTarget(t *testing.T) {
	first := &stubPublisher{}
	second := &stubPublisher{}
	fanout := Fanout{first, second}

	event := port.Event{Entity: "reservations", Action: "created", ResourceID: "42", Topic: "reservations.created"}
	if err := fanout.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("delivery counts = %d, %d, want 1 each", len(first.events), len(second.events))
	}
	if first.events[0].ResourceID != "42" {
		t.Fatalf("delivered event = %+v", first.events[0])
	}
}

func TestFanout_FailingTargetDoesNotStopDelivery(t *testing.T) {
	broken := &stubPublisher{err: errors.New("broker down")}
	healthy := &stubPublisher{}
	fanout := Fanout{broken, healthy}

	err := fanout.Publish(context.Background(), port.Event{Entity: "reservations", Action: "deleted"})
	if err == nil {
		t.Fatal("Publish() returned nil, want first target error")
	}
	if len(healthy.events) != 1 {
		t.Fatalf("healthy target received %d events, want 1", len(healthy.events))
	}
}

func TestNop_DiscardsEvents(t *testing.T) {
	if err := (Nop{}).Publish(context.Background(), port.Event{Entity: "reservations"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

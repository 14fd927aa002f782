package usecase

import (
	"context"
	"errors"
	"testing"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/domain"
	restaurants "tavola/internal/modules/restaurants/domain"
	"tavola/internal/shared/rest"
)

type fixedResolver struct {
	restaurant *restaurants.Restaurant
	err        error
}

func (r *fixedResolver) Resolve(ctx context.Context, id string) (*restaurants.Restaurant, error) {
	return r.restaurant, r.err
}

type capturingPublisher struct {
	events []port.Event
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, event port.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func openRestaurant() *restaurants.Restaurant {
	return &restaurants.Restaurant{
		ID:          1,
		Name:        "Trattoria Nonna",
		OpeningTime: "09:00",
		ClosingTime: "22:00",
	}
}

func bookingRequest() domain.BookingRequest {
	return domain.BookingRequest{
		RestaurantID:  "1",
		CustomerName:  "John Doe",
		CustomerEmail: "johndoe@example.com",
		CustomerPhone: "+1 234 567 8901",
		DateTime:      "2026-09-12T19:00",
		PartySize:     "4",
	}
}

func TestBookTable_Success(t *testing.T) {
	api := &fakeReservationAPI{createResult: domain.ReservationRecord{
		ID: 42, RestaurantID: 1, Status: domain.StatusPending,
	}}
	events := &capturingPublisher{}
	uc := NewBookTableUseCase(&fixedResolver{restaurant: openRestaurant()}, api, events, domain.Rules{})

	created, err := uc.Execute(context.Background(), bookingRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("unexpected id: %d", created.ID)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("new reservations must default to PENDING, got %q", created.Status)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected one event, got %d", len(events.events))
	}
	event := events.events[0]
	if event.Topic != "reservations.created" || event.ResourceID != "42" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestBookTable_ValidationFailureMakesNoNetworkCall(t *testing.T) {
	api := &fakeReservationAPI{}
	uc := NewBookTableUseCase(&fixedResolver{restaurant: openRestaurant()}, api, nil, domain.Rules{})

	request := bookingRequest()
	request.CustomerEmail = ""
	if _, err := uc.Execute(context.Background(), request); !errors.Is(err, domain.ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatal("validation failures must never reach the API")
	}
}

func TestBookTable_UnknownRestaurant(t *testing.T) {
	api := &fakeReservationAPI{}
	uc := NewBookTableUseCase(&fixedResolver{restaurant: nil}, api, nil, domain.Rules{})

	if _, err := uc.Execute(context.Background(), bookingRequest()); !errors.Is(err, domain.ErrMissingRestaurant) {
		t.Fatalf("expected ErrMissingRestaurant, got %v", err)
	}
	if api.createCalls != 0 {
		t.Fatal("unresolved restaurant must not reach the API")
	}
}

func TestBookTable_CreateFailureSurfacesTransportError(t *testing.T) {
	api := &fakeReservationAPI{createErr: &rest.TransportError{Op: "create reservation", StatusCode: 502}}
	events := &capturingPublisher{}
	uc := NewBookTableUseCase(&fixedResolver{restaurant: openRestaurant()}, api, events, domain.Rules{})

	if _, err := uc.Execute(context.Background(), bookingRequest()); !errors.Is(err, rest.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(events.events) != 0 {
		t.Fatal("no event may be published for a failed create")
	}
}

func TestBookTable_PublishFailureDoesNotFailBooking(t *testing.T) {
	api := &fakeReservationAPI{createResult: domain.ReservationRecord{ID: 42}}
	events := &capturingPublisher{err: errors.New("broker down")}
	uc := NewBookTableUseCase(&fixedResolver{restaurant: openRestaurant()}, api, events, domain.Rules{})

	if _, err := uc.Execute(context.Background(), bookingRequest()); err != nil {
		t.Fatalf("publish failures must stay best-effort, got %v", err)
	}
}

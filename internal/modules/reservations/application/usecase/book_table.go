package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/domain"
	restaurants "tavola/internal/modules/restaurants/domain"
)

// RestaurantResolver turns the form's restaurant selection into the resolved
// record, or nil when the id does not match a known restaurant.
type RestaurantResolver interface {
	Resolve(ctx context.Context, id string) (*restaurants.Restaurant, error)
}

// BookTableUseCase runs the booking flow: validate the raw submission against
// the selected restaurant, hand the draft to the reservation API, and announce
// the created reservation. Validation failures stay local and never produce a
// network call.
type BookTableUseCase struct {
	Restaurants RestaurantResolver
	API         port.ReservationAPI
	Events      port.EventPublisher
	Rules       domain.Rules
}

func NewBookTableUseCase(resolver RestaurantResolver, api port.ReservationAPI, events port.EventPublisher, rules domain.Rules) *BookTableUseCase {
	return &BookTableUseCase{Restaurants: resolver, API: api, Events: events, Rules: rules}
}

func (uc *BookTableUseCase) Execute(ctx context.Context, request domain.BookingRequest) (domain.ReservationRecord, error) {
	restaurant, err := uc.resolveRestaurant(ctx, request.RestaurantID)
	if err != nil {
		return domain.ReservationRecord{}, err
	}

	validated, err := domain.Validate(request, restaurant, uc.Rules)
	if err != nil {
		slog.Debug("booking rejected", slog.String("restaurantId", request.RestaurantID), slog.Any("error", err))
		return domain.ReservationRecord{}, err
	}

	created, err := uc.API.Create(ctx, validated.Record())
	if err != nil {
		slog.Error("booking create failed", slog.Int64("restaurantId", validated.RestaurantID), slog.Any("error", err))
		return domain.ReservationRecord{}, err
	}
	slog.Info("reservation booked",
		slog.Int64("id", created.ID),
		slog.Int64("restaurantId", created.RestaurantID),
		slog.String("date", created.ReservationDate),
		slog.String("time", created.ReservationTime),
		slog.Int("partySize", created.PartySize),
	)

	publish(ctx, uc.Events, port.Event{
		Entity:     "reservations",
		Action:     "created",
		ResourceID: strconv.FormatInt(created.ID, 10),
		Data:       created,
	})
	return created, nil
}

func (uc *BookTableUseCase) resolveRestaurant(ctx context.Context, id string) (*restaurants.Restaurant, error) {
	if uc.Restaurants == nil {
		return nil, nil
	}
	restaurant, err := uc.Restaurants.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

// publish fires an event without letting a broker hiccup fail the mutation
// that triggered it.
func publish(ctx context.Context, events port.EventPublisher, event port.Event) {
	if events == nil {
		return
	}
	if event.Topic == "" {
		event.Topic = event.Entity + "." + event.Action
	}
	if err := events.Publish(ctx, event); err != nil {
		slog.Warn("event publish failed", slog.String("topic", event.Topic), slog.String("resourceId", event.ResourceID), slog.Any("error", err))
	}
}

package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"tavola/internal/modules/restaurants/application/port"
	"tavola/internal/modules/restaurants/domain"
)

// Directory is the per-screen restaurant list: the booking form's select box
// and the registration flow both work against it. Like the admin panel it is
// plain state, refreshed wholesale from the API and replaced on success only.
// Not safe for concurrent use.
type Directory struct {
	api   port.RestaurantAPI
	items []domain.Restaurant
}

func NewDirectory(api port.RestaurantAPI) *Directory {
	return &Directory{api: api}
}

// Restaurants returns the current list snapshot.
func (d *Directory) Restaurants() []domain.Restaurant {
	snapshot := make([]domain.Restaurant, len(d.items))
	copy(snapshot, d.items)
	return snapshot
}

// Refresh re-fetches the restaurant list. Failures leave the local list
// untouched and are retryable.
func (d *Directory) Refresh(ctx context.Context) error {
	items, err := d.api.List(ctx)
	if err != nil {
		slog.Warn("restaurant list refresh failed", slog.Any("error", err))
		return err
	}
	d.items = items
	slog.Debug("restaurant list refreshed", slog.Int("count", len(items)))
	return nil
}

// Resolve finds the restaurant selected on the booking form. A blank or
// unknown id resolves to nil without error; the validator turns that into the
// missing-restaurant failure. The list is fetched lazily on first use.
func (d *Directory) Resolve(ctx context.Context, id string) (*domain.Restaurant, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, nil
	}
	if len(d.items) == 0 {
		if err := d.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	for i := range d.items {
		if d.items[i].ID == parsed {
			restaurant := d.items[i]
			return &restaurant, nil
		}
	}
	return nil, nil
}

// Register validates a registration draft and submits it. The created
// restaurant joins the local list so the booking form sees it without a full
// refresh.
func (d *Directory) Register(ctx context.Context, draft domain.RegistrationDraft) (domain.Restaurant, error) {
	restaurant, err := draft.Validate()
	if err != nil {
		slog.Debug("restaurant registration rejected", slog.String("name", draft.Name), slog.Any("error", err))
		return domain.Restaurant{}, err
	}
	created, err := d.api.Create(ctx, restaurant)
	if err != nil {
		slog.Warn("restaurant registration failed", slog.String("name", restaurant.Name), slog.Any("error", err))
		return domain.Restaurant{}, err
	}
	d.items = append(d.items, created)
	slog.Info("restaurant registered", slog.Int64("id", created.ID), slog.String("name", created.Name))
	return created, nil
}

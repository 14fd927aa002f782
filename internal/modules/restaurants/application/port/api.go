package port

import (
	"context"
	"errors"

	"tavola/internal/modules/restaurants/domain"
)

// ErrNotFound reports that no restaurant matches the requested id.
var ErrNotFound = errors.New("restaurant not found")

// RestaurantAPI is the restaurant side of the external reservation service.
type RestaurantAPI interface {
	List(ctx context.Context) ([]domain.Restaurant, error)
	Create(ctx context.Context, draft domain.Restaurant) (domain.Restaurant, error)
}

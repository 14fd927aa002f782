package port

import (
	"context"
	"errors"

	"tavola/internal/modules/reservations/domain"
)

// ErrNotFound reports that the reservation no longer exists upstream.
var ErrNotFound = errors.New("reservation not found")

// ReservationAPI is the external reservation service this gateway fronts. No
// call is retried automatically; the caller re-triggers on failure. Failed
// exchanges surface as rest.TransportError values.
type ReservationAPI interface {
	List(ctx context.Context) ([]domain.ReservationRecord, error)
	Create(ctx context.Context, draft domain.ReservationRecord) (domain.ReservationRecord, error)
	Update(ctx context.Context, record domain.ReservationRecord) (domain.ReservationRecord, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.ReservationRecord, error)
	Delete(ctx context.Context, id int64) error
}

package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/domain"
)

// AdminPanel holds the per-screen state of the reservation admin table: the
// fetched list, the per-row updating indicator and the pending delete
// confirmation. It is an explicit state object rather than a singleton; each
// admin screen owns one instance, and the last successful write wins. Not safe
// for concurrent use; callers serialize access.
type AdminPanel struct {
	api    port.ReservationAPI
	events port.EventPublisher
	policy domain.TransitionPolicy

	items         []domain.ReservationRecord
	updating      map[int64]struct{}
	pendingDelete int64
}

func NewAdminPanel(api port.ReservationAPI, events port.EventPublisher, policy domain.TransitionPolicy) *AdminPanel {
	return &AdminPanel{api: api, events: events, policy: policy, updating: make(map[int64]struct{})}
}

// Reservations returns the current list snapshot.
func (p *AdminPanel) Reservations() []domain.ReservationRecord {
	snapshot := make([]domain.ReservationRecord, len(p.items))
	copy(snapshot, p.items)
	return snapshot
}

// Refresh re-fetches the full reservation list. On success the local state is
// replaced wholesale; on failure it is left untouched and the caller may
// retry.
func (p *AdminPanel) Refresh(ctx context.Context) error {
	items, err := p.api.List(ctx)
	if err != nil {
		slog.Warn("reservation list refresh failed", slog.Any("error", err))
		return err
	}
	p.items = items
	slog.Debug("reservation list refreshed", slog.Int("count", len(items)))
	return nil
}

// SaveEdit submits an inline edit. The record is normalized before
// transmission; on failure the local row is untouched so the edit form keeps
// its state.
func (p *AdminPanel) SaveEdit(ctx context.Context, record domain.ReservationRecord) (domain.ReservationRecord, error) {
	index := p.indexOf(record.ID)
	if index < 0 {
		return domain.ReservationRecord{}, port.ErrNotFound
	}

	normalized := domain.NormalizeForEdit(record)
	updated, err := p.api.Update(ctx, normalized)
	if err != nil {
		slog.Warn("reservation edit failed", slog.Int64("id", record.ID), slog.Any("error", err))
		return domain.ReservationRecord{}, err
	}

	p.items[index] = updated
	publish(ctx, p.events, port.Event{
		Entity:     "reservations",
		Action:     "updated",
		ResourceID: strconv.FormatInt(updated.ID, 10),
		Data:       updated,
	})
	return updated, nil
}

// ChangeStatus validates and applies a status transition through the
// status-only endpoint. The row's updating indicator is set for the duration
// of the call and cleared on completion, success or failure. An unrecognized
// status never reaches the API, and a failed call leaves the local status
// unchanged.
func (p *AdminPanel) ChangeStatus(ctx context.Context, id int64, raw string) (domain.ReservationRecord, error) {
	requested, err := domain.ParseStatus(raw)
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	index := p.indexOf(id)
	if index < 0 {
		return domain.ReservationRecord{}, port.ErrNotFound
	}
	if _, err := domain.Transition(p.items[index].Status, requested, p.policy); err != nil {
		return domain.ReservationRecord{}, err
	}

	p.updating[id] = struct{}{}
	defer delete(p.updating, id)

	updated, err := p.api.UpdateStatus(ctx, id, requested)
	if err != nil {
		slog.Warn("status update failed", slog.Int64("id", id), slog.String("status", string(requested)), slog.Any("error", err))
		return domain.ReservationRecord{}, err
	}

	p.items[index] = updated
	slog.Info("reservation status changed", slog.Int64("id", id), slog.String("status", string(updated.Status)))
	publish(ctx, p.events, port.Event{
		Entity:     "reservations",
		Action:     "status-changed",
		ResourceID: strconv.FormatInt(id, 10),
		Metadata:   map[string]string{"status": string(updated.Status)},
		Data:       updated,
	})
	return updated, nil
}

// IsUpdating reports whether a status change for the row is in flight.
func (p *AdminPanel) IsUpdating(id int64) bool {
	_, ok := p.updating[id]
	return ok
}

// RequestDelete opens the delete confirmation for a row.
func (p *AdminPanel) RequestDelete(id int64) {
	p.pendingDelete = id
}

// CancelDelete dismisses the confirmation without deleting.
func (p *AdminPanel) CancelDelete() {
	p.pendingDelete = 0
}

// PendingDelete returns the id awaiting confirmation, zero when none.
func (p *AdminPanel) PendingDelete() int64 {
	return p.pendingDelete
}

// ConfirmDelete deletes the reservation awaiting confirmation. On success the
// row is removed and the confirmation cleared; on failure both the list and
// the open confirmation are preserved.
func (p *AdminPanel) ConfirmDelete(ctx context.Context) error {
	id := p.pendingDelete
	if id == 0 {
		return port.ErrNotFound
	}
	if err := p.api.Delete(ctx, id); err != nil {
		slog.Warn("reservation delete failed", slog.Int64("id", id), slog.Any("error", err))
		return err
	}

	if index := p.indexOf(id); index >= 0 {
		p.items = append(p.items[:index], p.items[index+1:]...)
	}
	p.pendingDelete = 0
	slog.Info("reservation deleted", slog.Int64("id", id))
	publish(ctx, p.events, port.Event{
		Entity:     "reservations",
		Action:     "deleted",
		ResourceID: strconv.FormatInt(id, 10),
	})
	return nil
}

func (p *AdminPanel) indexOf(id int64) int {
	for i, item := range p.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

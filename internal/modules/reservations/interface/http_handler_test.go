package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/application/usecase"
	"tavola/internal/modules/reservations/domain"
	restaurants "tavola/internal/modules/restaurants/domain"
	"tavola/internal/shared/rest"
)

type fakeAPI struct {
	items     []domain.ReservationRecord
	createErr error
	statusErr error
	deleteErr error
	nextID    int64
}

func (f *fakeAPI) List(ctx context.Context) ([]domain.ReservationRecord, error) {
	return append([]domain.ReservationRecord(nil), f.items...), nil
}

func (f *fakeAPI) Create(ctx context.Context, draft domain.ReservationRecord) (domain.ReservationRecord, error) {
	if f.createErr != nil {
		return domain.ReservationRecord{}, f.createErr
	}
	f.nextID++
	draft.ID = f.nextID
	draft.Status = domain.StatusPending
	f.items = append(f.items, draft)
	return draft, nil
}

func (f *fakeAPI) Update(ctx context.Context, record domain.ReservationRecord) (domain.ReservationRecord, error) {
	for i, item := range f.items {
		if item.ID == record.ID {
			f.items[i] = record
			return record, nil
		}
	}
	return domain.ReservationRecord{}, port.ErrNotFound
}

func (f *fakeAPI) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.ReservationRecord, error) {
	if f.statusErr != nil {
		return domain.ReservationRecord{}, f.statusErr
	}
	for i, item := range f.items {
		if item.ID == id {
			f.items[i].Status = status
			return f.items[i], nil
		}
	}
	return domain.ReservationRecord{}, port.ErrNotFound
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return port.ErrNotFound
}

type fixedResolver struct{ restaurant *restaurants.Restaurant }

func (r fixedResolver) Resolve(ctx context.Context, id string) (*restaurants.Restaurant, error) {
	return r.restaurant, nil
}

type dropPublisher struct{}

func (dropPublisher) Publish(context.Context, port.Event) error { return nil }

func newTestServer(api *fakeAPI) *echo.Echo {
	trattoria := &restaurants.Restaurant{
		ID:          7,
		Name:        "Trattoria Nonna",
		OpeningTime: "09:00:00",
		ClosingTime: "22:00:00",
		TotalTables: 12,
	}
	book := usecase.NewBookTableUseCase(fixedResolver{trattoria}, api, dropPublisher{}, domain.Rules{})
	panel := usecase.NewAdminPanel(api, dropPublisher{}, domain.TransitionAnyToAny)

	e := echo.New()
	NewHandler(book, panel).Register(e)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateBooking_Succeeds(t *testing.T) {
	e := newTestServer(&fakeAPI{})

	rec := doJSON(e, http.MethodPost, "/api/reservations", `{
		"restaurantId": 7,
		"customerName": "Ana",
		"customerEmail": "ana@example.com",
		"customerPhone": "555-0101",
		"reservationDate": "2026-09-12",
		"reservationTime": "19:00",
		"partySize": 4
	}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created domain.ReservationRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if created.ID == 0 || created.Status != domain.StatusPending {
		t.Fatalf("created = %+v", created)
	}
	if created.ReservationDate != "2026-09-12" || created.ReservationTime != "19:00:00" {
		t.Fatalf("created date/time = %q %q", created.ReservationDate, created.ReservationTime)
	}
}

func TestCreateBooking_ValidationFailureReturnsMessage(t *testing.T) {
	e := newTestServer(&fakeAPI{})

	rec := doJSON(e, http.MethodPost, "/api/reservations", `{
		"restaurantId": 7,
		"customerName": "Ana",
		"customerEmail": "ana@example.com",
		"customerPhone": "555-0101",
		"reservationDate": "2026-09-12",
		"reservationTime": "23:30",
		"partySize": 4
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "09:00 - 22:00") {
		t.Fatalf("body = %s, want operating hours message", rec.Body.String())
	}
}

func TestListReservations(t *testing.T) {
	api := &fakeAPI{items: []domain.ReservationRecord{
		{ID: 1, RestaurantID: 7, CustomerName: "Ana", PartySize: 2, Status: domain.StatusPending},
	}}
	e := newTestServer(api)

	rec := doJSON(e, http.MethodGet, "/api/reservations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var listed []domain.ReservationRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(listed) != 1 || listed[0].CustomerName != "Ana" {
		t.Fatalf("listed = %+v", listed)
	}
}

func TestUpdateStatus_PlainTextBody(t *testing.T) {
	api := &fakeAPI{items: []domain.ReservationRecord{
		{ID: 1, RestaurantID: 7, CustomerName: "Ana", PartySize: 2, Status: domain.StatusPending},
	}}
	e := newTestServer(api)

	req := httptest.NewRequest(http.MethodPut, "/api/reservations/1/status", strings.NewReader("confirmed"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated domain.ReservationRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if updated.Status != domain.StatusConfirmed {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestUpdateStatus_UnknownValue(t *testing.T) {
	api := &fakeAPI{items: []domain.ReservationRecord{
		{ID: 1, RestaurantID: 7, CustomerName: "Ana", PartySize: 2, Status: domain.StatusPending},
	}}
	e := newTestServer(api)

	req := httptest.NewRequest(http.MethodPut, "/api/reservations/1/status", strings.NewReader("ARCHIVED"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteReservation(t *testing.T) {
	api := &fakeAPI{items: []domain.ReservationRecord{
		{ID: 1, RestaurantID: 7, CustomerName: "Ana", PartySize: 2, Status: domain.StatusPending},
	}}
	e := newTestServer(api)

	rec := doJSON(e, http.MethodDelete, "/api/reservations/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(api.items) != 0 {
		t.Fatalf("items = %+v, want empty", api.items)
	}
}

func TestUpstreamFailureMapsToBadGateway(t *testing.T) {
	api := &fakeAPI{
		items:     []domain.ReservationRecord{{ID: 1, RestaurantID: 7, CustomerName: "Ana", PartySize: 2, Status: domain.StatusPending}},
		deleteErr: &rest.TransportError{Op: "delete reservation", StatusCode: 500},
	}
	e := newTestServer(api)

	rec := doJSON(e, http.MethodDelete, "/api/reservations/1", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

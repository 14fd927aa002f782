package transport

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/application/usecase"
	"tavola/internal/modules/reservations/domain"
	"tavola/internal/shared/httputil"
	"tavola/internal/shared/normalization"
	"tavola/internal/shared/rest"
)

// Handler exposes the reservation surface over HTTP. Booking submissions are
// validated locally before anything reaches the upstream API; admin operations
// run through the panel state so its invariants hold for HTTP callers too.
type Handler struct {
	book   *usecase.BookTableUseCase
	panel  *usecase.AdminPanel
	errors *httputil.ErrorMapper

	// The panel tracks one admin screen's state and is not safe for
	// concurrent use; every route that touches it holds this lock.
	mu sync.Mutex
}

func NewHandler(book *usecase.BookTableUseCase, panel *usecase.AdminPanel) *Handler {
	return &Handler{
		book:   book,
		panel:  panel,
		errors: newReservationErrorMapper(),
	}
}

func newReservationErrorMapper() *httputil.ErrorMapper {
	mapper := httputil.NewErrorMapper().
		WithDefault(http.StatusInternalServerError, "internal server error")
	for _, validation := range []error{
		domain.ErrMissingRestaurant,
		domain.ErrMissingName,
		domain.ErrMissingEmail,
		domain.ErrInvalidEmail,
		domain.ErrMissingPhone,
		domain.ErrInvalidPartySize,
		domain.ErrInvalidDateTime,
		domain.ErrOutsideHours,
		domain.ErrUnknownStatus,
		domain.ErrTerminalStatus,
	} {
		mapper.WithMapping(validation, http.StatusBadRequest, "")
	}
	return mapper.
		WithMapping(port.ErrNotFound, http.StatusNotFound, "reservation not found").
		WithMapping(rest.ErrUpstream, http.StatusBadGateway, "reservation service unavailable")
}

// Register mounts the reservation routes. Booking stays public; the admin
// operations take the supplied middleware.
func (h *Handler) Register(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.POST("/api/reservations", h.create)
	e.GET("/api/reservations", h.list, admin...)
	e.PUT("/api/reservations/:id", h.update, admin...)
	e.PUT("/api/reservations/:id/status", h.updateStatus, admin...)
	e.DELETE("/api/reservations/:id", h.delete, admin...)
}

func (h *Handler) list(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.panel.Refresh(c.Request().Context()); err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, h.panel.Reservations())
}

func (h *Handler) create(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed booking payload")
	}
	record, err := h.book.Execute(c.Request().Context(), bookingRequestFromPayload(payload))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, record)
}

// bookingRequestFromPayload lifts a loose JSON body into the raw string form
// the validator expects. A combined dateTime wins; otherwise the date and time
// fields are joined.
func bookingRequestFromPayload(payload map[string]any) domain.BookingRequest {
	dateTime := normalization.AsFormValue(payload["dateTime"])
	if dateTime == "" {
		date := normalization.AsFormValue(payload["reservationDate"])
		clock := normalization.AsFormValue(payload["reservationTime"])
		if date != "" && clock != "" {
			dateTime = date + "T" + clock
		}
	}
	return domain.BookingRequest{
		RestaurantID:    normalization.AsFormValue(payload["restaurantId"]),
		CustomerName:    normalization.AsFormValue(payload["customerName"]),
		CustomerEmail:   normalization.AsFormValue(payload["customerEmail"]),
		CustomerPhone:   normalization.AsFormValue(payload["customerPhone"]),
		DateTime:        dateTime,
		PartySize:       normalization.AsFormValue(payload["partySize"]),
		SpecialRequests: normalization.AsFormValue(payload["specialRequests"]),
	}
}

func (h *Handler) update(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	var record domain.ReservationRecord
	if err := c.Bind(&record); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed reservation payload")
	}
	record.ID = id

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureLoaded(c, id); err != nil {
		return err
	}
	updated, err := h.panel.SaveEdit(c.Request().Context(), record)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) updateStatus(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 64))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable status body")
	}
	requested := strings.TrimSpace(string(body))

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureLoaded(c, id); err != nil {
		return err
	}
	updated, err := h.panel.ChangeStatus(c.Request().Context(), id, requested)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.ensureLoaded(c, id); err != nil {
		return err
	}
	h.panel.RequestDelete(id)
	if err := h.panel.ConfirmDelete(c.Request().Context()); err != nil {
		h.panel.CancelDelete()
		return h.httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ensureLoaded refreshes the panel when the target row is not in its state,
// which happens whenever HTTP callers act on rows created since the last list.
func (h *Handler) ensureLoaded(c echo.Context, id int64) error {
	for _, record := range h.panel.Reservations() {
		if record.ID == id {
			return nil
		}
	}
	if err := h.panel.Refresh(c.Request().Context()); err != nil {
		return h.httpError(err)
	}
	return nil
}

func recordID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}
	return id, nil
}

func (h *Handler) httpError(err error) error {
	info := h.errors.Map(err)
	return echo.NewHTTPError(info.Status, info.Message)
}

package transport

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"tavola/internal/modules/restaurants/application/usecase"
	"tavola/internal/modules/restaurants/domain"
	"tavola/internal/shared/httputil"
	"tavola/internal/shared/normalization"
	"tavola/internal/shared/rest"
)

// Handler exposes the restaurant directory over HTTP.
type Handler struct {
	directory *usecase.Directory
	errors    *httputil.ErrorMapper
	mu        sync.Mutex
}

func NewHandler(directory *usecase.Directory) *Handler {
	mapper := httputil.NewErrorMapper().
		WithDefault(http.StatusInternalServerError, "internal server error").
		WithMapping(domain.ErrMissingName, http.StatusBadRequest, "").
		WithMapping(domain.ErrMissingAddress, http.StatusBadRequest, "").
		WithMapping(domain.ErrMissingCuisine, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidTableCount, http.StatusBadRequest, "").
		WithMapping(domain.ErrInvalidHours, http.StatusBadRequest, "").
		WithMapping(rest.ErrUpstream, http.StatusBadGateway, "restaurant service unavailable")
	return &Handler{directory: directory, errors: mapper}
}

// Register mounts the directory routes. Listing stays public for the booking
// form; registration takes the supplied middleware.
func (h *Handler) Register(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.GET("/api/restaurants", h.list)
	e.POST("/api/restaurants", h.register, admin...)
}

func (h *Handler) list(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.directory.Refresh(c.Request().Context()); err != nil {
		info := h.errors.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}
	return c.JSON(http.StatusOK, h.directory.Restaurants())
}

func (h *Handler) register(c echo.Context) error {
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed restaurant payload")
	}
	draft := domain.RegistrationDraft{
		Name:        normalization.AsFormValue(payload["name"]),
		Address:     normalization.AsFormValue(payload["address"]),
		Cuisine:     normalization.AsFormValue(payload["cuisine"]),
		OpeningTime: normalization.AsFormValue(payload["openingTime"]),
		ClosingTime: normalization.AsFormValue(payload["closingTime"]),
		TotalTables: normalization.AsFormValue(payload["totalTables"]),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	created, err := h.directory.Register(c.Request().Context(), draft)
	if err != nil {
		info := h.errors.Map(err)
		return echo.NewHTTPError(info.Status, info.Message)
	}
	return c.JSON(http.StatusCreated, created)
}

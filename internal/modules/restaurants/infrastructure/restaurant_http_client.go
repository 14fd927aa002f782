package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	restaurantport "tavola/internal/modules/restaurants/application/port"
	"tavola/internal/modules/restaurants/domain"
	"tavola/internal/shared/normalization"
	"tavola/internal/shared/rest"
)

const restaurantsPath = "/api/restaurants"

// RestaurantHTTPClient implements the restaurant side of the upstream API.
type RestaurantHTTPClient struct {
	rest *rest.Client
}

func NewRestaurantHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *RestaurantHTTPClient {
	return &RestaurantHTTPClient{rest: rest.NewClient(baseURL, timeout, client)}
}

func (c *RestaurantHTTPClient) List(ctx context.Context) ([]domain.Restaurant, error) {
	const op = "list restaurants"
	req, err := c.rest.NewRequest(ctx, http.MethodGet, restaurantsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("restaurant request error", slog.String("op", op), slog.Any("error", err))
		return nil, &rest.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		logUnexpectedStatus(op, res)
		return nil, &rest.TransportError{Op: op, StatusCode: res.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, &rest.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	items := normalization.AsInterfaceSlice(payload)
	if items == nil {
		if container := normalization.MapFromPayload(payload); container != nil {
			items = normalization.AsInterfaceSlice(container["items"])
		}
	}

	restaurants := make([]domain.Restaurant, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if restaurant, ok := domain.NormalizeRestaurant(raw); ok {
			restaurants = append(restaurants, restaurant)
		}
	}
	slog.Debug("restaurant list fetched", slog.Int("count", len(restaurants)))
	return restaurants, nil
}

func (c *RestaurantHTTPClient) Create(ctx context.Context, draft domain.Restaurant) (domain.Restaurant, error) {
	const op = "register restaurant"
	body, err := json.Marshal(draft)
	if err != nil {
		return domain.Restaurant{}, err
	}
	req, err := c.rest.NewRequest(ctx, http.MethodPost, restaurantsPath, bytes.NewReader(body))
	if err != nil {
		return domain.Restaurant{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("restaurant request error", slog.String("op", op), slog.Any("error", err))
		return domain.Restaurant{}, &rest.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		logUnexpectedStatus(op, res)
		return domain.Restaurant{}, &rest.TransportError{Op: op, StatusCode: res.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return domain.Restaurant{}, &rest.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	restaurant, ok := domain.NormalizeRestaurant(normalization.MapFromPayload(payload))
	if !ok {
		return domain.Restaurant{}, &rest.TransportError{Op: op, Err: fmt.Errorf("malformed restaurant payload")}
	}
	return restaurant, nil
}

func logUnexpectedStatus(op string, res *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
	slog.Error("restaurant api unexpected status",
		slog.String("op", op),
		slog.Int("status", res.StatusCode),
		slog.String("body", strings.TrimSpace(string(body))),
	)
}

var _ restaurantport.RestaurantAPI = (*RestaurantHTTPClient)(nil)

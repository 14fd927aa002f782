package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tavola/internal/modules/reservations/application/port"
	"tavola/internal/modules/reservations/domain"
	"tavola/internal/shared/normalization"
	"tavola/internal/shared/rest"
)

const reservationsPath = "/api/reservations"

// ReservationHTTPClient implements port.ReservationAPI against the upstream
// reservation REST service.
type ReservationHTTPClient struct {
	rest *rest.Client
}

func NewReservationHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *ReservationHTTPClient {
	return &ReservationHTTPClient{rest: rest.NewClient(baseURL, timeout, client)}
}

func (c *ReservationHTTPClient) List(ctx context.Context) ([]domain.ReservationRecord, error) {
	const op = "list reservations"
	req, err := c.rest.NewRequest(ctx, http.MethodGet, reservationsPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	payload, err := c.do(req, op, http.StatusOK)
	if err != nil {
		return nil, err
	}

	items := normalization.AsInterfaceSlice(payload)
	if items == nil {
		if container := normalization.MapFromPayload(payload); container != nil {
			items = normalization.AsInterfaceSlice(container["items"])
		}
	}

	records := make([]domain.ReservationRecord, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if record, ok := domain.NormalizeRecord(raw); ok {
			records = append(records, record)
		}
	}
	slog.Debug("reservation list fetched", slog.Int("count", len(records)))
	return records, nil
}

func (c *ReservationHTTPClient) Create(ctx context.Context, draft domain.ReservationRecord) (domain.ReservationRecord, error) {
	const op = "create reservation"
	body, err := json.Marshal(draft)
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	req, err := c.rest.NewRequest(ctx, http.MethodPost, reservationsPath, bytes.NewReader(body))
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.doRecord(req, op)
}

func (c *ReservationHTTPClient) Update(ctx context.Context, record domain.ReservationRecord) (domain.ReservationRecord, error) {
	const op = "update reservation"
	body, err := json.Marshal(record)
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	req, err := c.rest.NewRequest(ctx, http.MethodPut, recordPath(record.ID), bytes.NewReader(body))
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.doRecord(req, op)
}

// UpdateStatus hits the status-only endpoint, which takes the bare status
// value as a plain-text body.
func (c *ReservationHTTPClient) UpdateStatus(ctx context.Context, id int64, status domain.Status) (domain.ReservationRecord, error) {
	const op = "update reservation status"
	req, err := c.rest.NewRequest(ctx, http.MethodPut, recordPath(id)+"/status", strings.NewReader(string(status)))
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	return c.doRecord(req, op)
}

func (c *ReservationHTTPClient) Delete(ctx context.Context, id int64) error {
	const op = "delete reservation"
	req, err := c.rest.NewRequest(ctx, http.MethodDelete, recordPath(id), nil)
	if err != nil {
		return err
	}

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("reservation request error", slog.String("op", op), slog.Any("error", err))
		return &rest.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusNoContent, http.StatusOK:
		return nil
	case http.StatusNotFound:
		return port.ErrNotFound
	default:
		logUnexpectedStatus(op, res)
		return &rest.TransportError{Op: op, StatusCode: res.StatusCode}
	}
}

func (c *ReservationHTTPClient) doRecord(req *http.Request, op string) (domain.ReservationRecord, error) {
	payload, err := c.do(req, op, http.StatusOK, http.StatusCreated)
	if err != nil {
		return domain.ReservationRecord{}, err
	}
	raw := normalization.MapFromPayload(payload)
	record, ok := domain.NormalizeRecord(raw)
	if !ok {
		return domain.ReservationRecord{}, &rest.TransportError{Op: op, Err: fmt.Errorf("malformed reservation payload")}
	}
	return record, nil
}

func (c *ReservationHTTPClient) do(req *http.Request, op string, accepted ...int) (any, error) {
	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("reservation request error", slog.String("op", op), slog.Any("error", err))
		return nil, &rest.TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, port.ErrNotFound
	}
	if !statusAccepted(res.StatusCode, accepted) {
		logUnexpectedStatus(op, res)
		return nil, &rest.TransportError{Op: op, StatusCode: res.StatusCode}
	}

	var payload any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, &rest.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload, nil
}

func statusAccepted(status int, accepted []int) bool {
	for _, code := range accepted {
		if status == code {
			return true
		}
	}
	return false
}

func logUnexpectedStatus(op string, res *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
	slog.Error("reservation api unexpected status",
		slog.String("op", op),
		slog.Int("status", res.StatusCode),
		slog.String("body", strings.TrimSpace(string(body))),
	)
}

func recordPath(id int64) string {
	return reservationsPath + "/" + strconv.FormatInt(id, 10)
}

var _ port.ReservationAPI = (*ReservationHTTPClient)(nil)

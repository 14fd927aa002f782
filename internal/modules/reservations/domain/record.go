package domain

import (
	"strings"

	"tavola/internal/shared/normalization"
)

// ReservationRecord is the canonical reservation shape exchanged with the
// reservation API. A draft has no id and no status; both are assigned by the
// API on creation, with status defaulting to PENDING.
type ReservationRecord struct {
	ID              int64  `json:"id,omitempty"`
	RestaurantID    int64  `json:"restaurantId"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	ReservationDate string `json:"reservationDate"`
	ReservationTime string `json:"reservationTime"`
	PartySize       int    `json:"partySize"`
	SpecialRequests string `json:"specialRequests"`
	Status          Status `json:"status,omitempty"`
}

// NormalizeRecord constructs a ReservationRecord from a loosely typed payload
// map. Party size tolerates numeric strings since inline edits submit form
// values.
func NormalizeRecord(raw map[string]any) (ReservationRecord, bool) {
	id := normalization.AsInt64(raw["id"])
	if id == 0 {
		return ReservationRecord{}, false
	}
	record := ReservationRecord{
		ID:              id,
		RestaurantID:    normalization.AsInt64(raw["restaurantId"]),
		CustomerName:    normalization.AsString(raw["customerName"]),
		CustomerEmail:   normalization.AsString(raw["customerEmail"]),
		CustomerPhone:   normalization.AsString(raw["customerPhone"]),
		ReservationDate: normalization.AsString(raw["reservationDate"]),
		ReservationTime: normalization.AsString(raw["reservationTime"]),
		PartySize:       normalization.AsInt(raw["partySize"]),
		SpecialRequests: normalization.AsString(raw["specialRequests"]),
	}
	if status, err := ParseStatus(normalization.AsString(raw["status"])); err == nil {
		record.Status = status
	}
	return record, true
}

// NormalizeForEdit prepares an inline-edited record for submission: text
// fields are trimmed, date and time strings are left as provided. Normalizing
// an already-normalized record is a no-op.
func NormalizeForEdit(record ReservationRecord) ReservationRecord {
	record.CustomerName = strings.TrimSpace(record.CustomerName)
	record.CustomerEmail = strings.TrimSpace(record.CustomerEmail)
	record.CustomerPhone = strings.TrimSpace(record.CustomerPhone)
	record.ReservationDate = strings.TrimSpace(record.ReservationDate)
	record.ReservationTime = strings.TrimSpace(record.ReservationTime)
	record.SpecialRequests = strings.TrimSpace(record.SpecialRequests)
	return record
}

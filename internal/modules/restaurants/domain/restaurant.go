package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tavola/internal/shared/normalization"
)

// Registration failures surfaced to the restaurant form. Checked in field
// order, first failure wins.
var (
	ErrMissingName       = errors.New("restaurant name is required")
	ErrMissingAddress    = errors.New("restaurant address is required")
	ErrMissingCuisine    = errors.New("cuisine type is required")
	ErrInvalidTableCount = errors.New("total tables must be a positive number")
)

// Restaurant is the canonical restaurant shape exchanged with the reservation
// API. Opening and closing times stay in their "HH:MM" wire form; Hours parses
// them on demand.
type Restaurant struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Cuisine     string `json:"cuisine"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
	TotalTables int    `json:"totalTables"`
}

// Hours returns the restaurant's availability window.
func (r Restaurant) Hours() (OperatingHours, error) {
	return BuildOperatingHours(r.OpeningTime, r.ClosingTime)
}

// NormalizeRestaurant constructs a Restaurant from a loosely typed payload map.
func NormalizeRestaurant(raw map[string]any) (Restaurant, bool) {
	id := normalization.AsInt64(raw["id"])
	if id == 0 {
		return Restaurant{}, false
	}
	return Restaurant{
		ID:          id,
		Name:        normalization.AsString(raw["name"]),
		Address:     normalization.AsString(raw["address"]),
		Cuisine:     normalization.AsString(raw["cuisine"]),
		OpeningTime: normalization.AsString(raw["openingTime"]),
		ClosingTime: normalization.AsString(raw["closingTime"]),
		TotalTables: normalization.AsInt(raw["totalTables"]),
	}, true
}

// RegistrationDraft carries the raw form values of a restaurant registration.
// Every field is a string as it arrives from the form.
type RegistrationDraft struct {
	Name        string
	Address     string
	Cuisine     string
	OpeningTime string
	ClosingTime string
	TotalTables string
}

// Validate checks the draft and returns the unsaved Restaurant ready for
// submission, with totalTables coerced to an integer.
func (d RegistrationDraft) Validate() (Restaurant, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return Restaurant{}, ErrMissingName
	}
	address := strings.TrimSpace(d.Address)
	if address == "" {
		return Restaurant{}, ErrMissingAddress
	}
	cuisine := strings.TrimSpace(d.Cuisine)
	if cuisine == "" {
		return Restaurant{}, ErrMissingCuisine
	}
	if _, err := BuildOperatingHours(d.OpeningTime, d.ClosingTime); err != nil {
		return Restaurant{}, err
	}
	tables, err := strconv.Atoi(strings.TrimSpace(d.TotalTables))
	if err != nil || tables < 1 {
		return Restaurant{}, fmt.Errorf("%w: %q", ErrInvalidTableCount, d.TotalTables)
	}
	return Restaurant{
		Name:        name,
		Address:     address,
		Cuisine:     cuisine,
		OpeningTime: strings.TrimSpace(d.OpeningTime),
		ClosingTime: strings.TrimSpace(d.ClosingTime),
		TotalTables: tables,
	}, nil
}

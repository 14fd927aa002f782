package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidHours reports operating hours that are missing, malformed, or
// inverted (closing at or before opening).
var ErrInvalidHours = errors.New("opening time must be before closing time")

// OperatingHours is the daily availability window of a restaurant. Reservation
// times must fall inside it, boundaries included.
type OperatingHours struct {
	open  time.Time
	close time.Time
}

// BuildOperatingHours constructs the window from "HH:MM" values, enforcing the
// open < close invariant.
func BuildOperatingHours(openRaw, closeRaw string) (OperatingHours, error) {
	open, err := parseClock(openRaw)
	if err != nil {
		return OperatingHours{}, err
	}
	close, err := parseClock(closeRaw)
	if err != nil {
		return OperatingHours{}, err
	}
	if !close.After(open) {
		return OperatingHours{}, ErrInvalidHours
	}
	return OperatingHours{open: open, close: close}, nil
}

// Contains reports whether t's time of day falls within the window. The
// comparison is inclusive at both ends and evaluated at second granularity.
func (h OperatingHours) Contains(t time.Time) bool {
	clock := time.Date(h.open.Year(), h.open.Month(), h.open.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, h.open.Location())
	return !clock.Before(h.open) && !clock.After(h.close)
}

// String renders the window for user-facing messages, e.g. "09:00 - 22:00".
func (h OperatingHours) String() string {
	return h.open.Format("15:04") + " - " + h.close.Format("15:04")
}

func parseClock(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidHours
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, ErrInvalidHours
}

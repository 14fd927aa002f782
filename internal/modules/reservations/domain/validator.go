package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	restaurants "tavola/internal/modules/restaurants/domain"
)

// Rules configures the validation behaviours the booking flow leaves open.
// The zero value reproduces the observed behaviour: email checked for
// presence only, no party size ceiling.
type Rules struct {
	// RequireEmailFormat additionally checks the email against a standard
	// shape instead of accepting any non-empty value.
	RequireEmailFormat bool
	// MaxPartySize caps the party size when greater than zero.
	MaxPartySize int
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Layouts accepted for the combined date+time form value, most specific
// first. The datetime picker emits RFC 3339; plain HTML inputs emit the
// minute-granularity local forms.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Validate decides whether a booking request is well-formed and falls inside
// the restaurant's operating hours. Checks run in form order and stop at the
// first failure. The restaurant argument is the resolved selection and may be
// nil when none was made. Validate is pure: no I/O, no side effects.
func Validate(request BookingRequest, restaurant *restaurants.Restaurant, rules Rules) (ValidatedRequest, error) {
	if restaurant == nil || strings.TrimSpace(request.RestaurantID) == "" {
		return ValidatedRequest{}, ErrMissingRestaurant
	}

	name := strings.TrimSpace(request.CustomerName)
	if name == "" {
		return ValidatedRequest{}, ErrMissingName
	}

	email := strings.TrimSpace(request.CustomerEmail)
	if email == "" {
		return ValidatedRequest{}, ErrMissingEmail
	}
	if rules.RequireEmailFormat && !emailShape.MatchString(email) {
		return ValidatedRequest{}, ErrInvalidEmail
	}

	phone := strings.TrimSpace(request.CustomerPhone)
	if phone == "" {
		return ValidatedRequest{}, ErrMissingPhone
	}

	partySize, err := strconv.Atoi(strings.TrimSpace(request.PartySize))
	if err != nil || partySize < 1 {
		return ValidatedRequest{}, fmt.Errorf("%w: %q", ErrInvalidPartySize, request.PartySize)
	}
	if rules.MaxPartySize > 0 && partySize > rules.MaxPartySize {
		return ValidatedRequest{}, fmt.Errorf("%w (maximum %d guests)", ErrInvalidPartySize, rules.MaxPartySize)
	}

	when, err := parseDateTime(request.DateTime)
	if err != nil {
		return ValidatedRequest{}, err
	}

	hours, err := restaurant.Hours()
	if err != nil {
		return ValidatedRequest{}, fmt.Errorf("%w (%s - %s)", ErrOutsideHours, restaurant.OpeningTime, restaurant.ClosingTime)
	}
	if !hours.Contains(when) {
		return ValidatedRequest{}, fmt.Errorf("%w (%s)", ErrOutsideHours, hours)
	}

	return ValidatedRequest{
		RestaurantID:    restaurant.ID,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerPhone:   phone,
		ReservationDate: when.Format("2006-01-02"),
		ReservationTime: when.Format("15:04:05"),
		PartySize:       partySize,
		SpecialRequests: strings.TrimSpace(request.SpecialRequests),
	}, nil
}

func parseDateTime(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrInvalidDateTime
	}
	for _, layout := range dateTimeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, raw)
}

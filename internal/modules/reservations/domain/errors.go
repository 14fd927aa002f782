package domain

import "errors"

// Validation failures surfaced to the booking form. They are resolved locally
// and never reach the reservation API. Checks short-circuit, so a request
// missing several fields reports only the first one.
var (
	ErrMissingRestaurant = errors.New("a restaurant must be selected")
	ErrMissingName       = errors.New("customer name is required")
	ErrMissingEmail      = errors.New("customer email is required")
	ErrInvalidEmail      = errors.New("Valid email is required.")
	ErrMissingPhone      = errors.New("customer phone is required")
	ErrInvalidPartySize  = errors.New("party size must be a positive whole number")
	ErrInvalidDateTime   = errors.New("a valid date and time must be selected")
	ErrOutsideHours      = errors.New("reservation time is outside restaurant operating hours")
)

// Status machine failures.
var (
	ErrUnknownStatus  = errors.New("unknown reservation status")
	ErrTerminalStatus = errors.New("cancelled reservations cannot change status")
)

package domain

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle stage of a reservation as exposed by the
// reservation API. New reservations start as PENDING.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusConfirmed: {},
	StatusCancelled: {},
}

// ParseStatus returns the canonical Status for raw. Unlike display
// normalization, parsing is strict: anything outside the three lifecycle
// values fails with ErrUnknownStatus.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownStatuses[candidate]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return candidate, nil
}

// TransitionPolicy selects how permissive status transitions are.
type TransitionPolicy int

const (
	// TransitionAnyToAny allows any known status to move to any other known
	// status. This matches the admin panel, which lets CANCELLED reservations
	// be reopened.
	TransitionAnyToAny TransitionPolicy = iota
	// TransitionStrict treats CANCELLED as terminal.
	TransitionStrict
)

// Transition validates a status change and returns the resulting status. On
// failure the caller's current status is untouched; the error reports why the
// change was refused.
func Transition(current, requested Status, policy TransitionPolicy) (Status, error) {
	if _, ok := knownStatuses[current]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, current)
	}
	if _, ok := knownStatuses[requested]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, requested)
	}
	if policy == TransitionStrict && current == StatusCancelled && requested != StatusCancelled {
		return "", ErrTerminalStatus
	}
	return requested, nil
}

package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected Status
		wantErr  bool
	}{
		{name: "pending lowercase", input: " pending ", expected: StatusPending},
		{name: "confirmed uppercase", input: "CONFIRMED", expected: StatusConfirmed},
		{name: "cancelled mixed case", input: "Cancelled", expected: StatusCancelled},
		{name: "unknown value", input: "SEATED", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := ParseStatus(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownStatus) {
					t.Fatalf("expected ErrUnknownStatus, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, status)
			}
		})
	}
}

func TestTransition_AnyToAny(t *testing.T) {
	statuses := []Status{StatusPending, StatusConfirmed, StatusCancelled}
	for _, from := range statuses {
		for _, to := range statuses {
			got, err := Transition(from, to, TransitionAnyToAny)
			if err != nil {
				t.Fatalf("%s -> %s: unexpected error: %v", from, to, err)
			}
			if got != to {
				t.Fatalf("%s -> %s: got %s", from, to, got)
			}
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	if _, err := Transition(StatusPending, Status("ARCHIVED"), TransitionAnyToAny); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus for requested, got %v", err)
	}
	if _, err := Transition(Status("ARCHIVED"), StatusPending, TransitionAnyToAny); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus for current, got %v", err)
	}
}

func TestTransition_StrictCancelledIsTerminal(t *testing.T) {
	if _, err := Transition(StatusCancelled, StatusPending, TransitionStrict); !errors.Is(err, ErrTerminalStatus) {
		t.Fatalf("expected ErrTerminalStatus, got %v", err)
	}
	if got, err := Transition(StatusCancelled, StatusCancelled, TransitionStrict); err != nil || got != StatusCancelled {
		t.Fatalf("cancelled -> cancelled should hold, got %v, %v", got, err)
	}
	if got, err := Transition(StatusPending, StatusConfirmed, TransitionStrict); err != nil || got != StatusConfirmed {
		t.Fatalf("pending -> confirmed should pass, got %v, %v", got, err)
	}
}

package rest

import (
	"errors"
	"fmt"
)

// ErrUpstream marks any failed exchange with the upstream API. Use errors.Is
// against it; inspect TransportError for the status code.
var ErrUpstream = errors.New("upstream api request failed")

// TransportError reports a non-2xx response or a network failure on an
// upstream call. StatusCode is zero when the request never completed.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUpstream
}

func (e *TransportError) Is(target error) bool { return target == ErrUpstream }

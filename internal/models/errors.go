package models

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for per-record pipeline failures. Handlers and tests
// match on these with errors.Is; the concrete types below carry the detail.
var (
	ErrUnresolvableAirport  = errors.New("unresolvable airport")
	ErrMalformedTimestamp   = errors.New("malformed timestamp")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrDegenerateSchedule   = errors.New("degenerate schedule")
)

// UnresolvableAirportError indicates an airport code absent from the
// reference table. The pipeline never invents coordinates for it.
type UnresolvableAirportError struct {
	Code string
}

func (e *UnresolvableAirportError) Error() string {
	return fmt.Sprintf("airport %q not found in reference table", e.Code)
}

func (e *UnresolvableAirportError) Unwrap() error { return ErrUnresolvableAirport }

// MissingFieldError names the required segment field that was null or absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingRequiredField }

// MalformedTimestampError reports a date/time value that could not be parsed.
type MalformedTimestampError struct {
	Field string
	Value string
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("field %q has unparseable timestamp %q", e.Field, e.Value)
}

func (e *MalformedTimestampError) Unwrap() error { return ErrMalformedTimestamp }

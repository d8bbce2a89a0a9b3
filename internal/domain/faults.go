// Package domain contains the fault taxonomy and value types shared by all
// capability adapters. Faults are business-level failure classifications,
// NOT HTTP errors - they are mapped to user-facing diagnoses by the
// classifier and never escape an operation boundary.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrMissingArgument indicates a required argument was absent or blank.
	ErrMissingArgument = errors.New("missing argument")

	// ErrMalformedArgument indicates an argument failed syntactic validation.
	ErrMalformedArgument = errors.New("malformed argument")

	// ErrTransport indicates the HTTP round trip itself failed
	// (DNS, connection refused, timeout, cancellation).
	ErrTransport = errors.New("transport failure")

	// ErrUpstreamStatus indicates the upstream answered outside 2xx.
	ErrUpstreamStatus = errors.New("upstream status error")

	// ErrUnexpected indicates a runtime failure not covered by the other
	// kinds, such as a response that could not be decoded.
	ErrUnexpected = errors.New("unexpected failure")
)

// MissingArgumentError carries the declared name of the absent argument.
type MissingArgumentError struct {
	Argument string
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("required argument %q is missing or empty", e.Argument)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MissingArgumentError) Unwrap() error {
	return ErrMissingArgument
}

// NewMissingArgumentError creates a missing argument fault.
func NewMissingArgumentError(argument string) error {
	return &MissingArgumentError{Argument: argument}
}

// MalformedArgumentError carries the argument name and the parser's reason.
type MalformedArgumentError struct {
	Argument string
	Reason   string
}

// Error implements the error interface.
func (e *MalformedArgumentError) Error() string {
	return fmt.Sprintf("argument %q is invalid: %s", e.Argument, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *MalformedArgumentError) Unwrap() error {
	return ErrMalformedArgument
}

// NewMalformedArgumentError creates a malformed argument fault.
func NewMalformedArgumentError(argument, reason string) error {
	return &MalformedArgumentError{Argument: argument, Reason: reason}
}

// TransportError wraps a failed HTTP round trip.
type TransportError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// NewTransportError creates a transport fault.
func NewTransportError(operation string, cause error) error {
	return &TransportError{Operation: operation, Cause: cause}
}

// UpstreamStatusError carries the non-2xx status and best-effort body.
type UpstreamStatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Operation, e.StatusCode)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UpstreamStatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// NewUpstreamStatusError creates an upstream status fault.
func NewUpstreamStatusError(operation string, statusCode int, body string) error {
	return &UpstreamStatusError{Operation: operation, StatusCode: statusCode, Body: body}
}

// UnexpectedError wraps any runtime fault outside the other kinds.
type UnexpectedError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected failure during %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnexpectedError) Unwrap() error {
	return ErrUnexpected
}

// NewUnexpectedError creates an unexpected fault.
func NewUnexpectedError(operation string, cause error) error {
	return &UnexpectedError{Operation: operation, Cause: cause}
}

// IsMissingArgument checks if an error is a missing argument fault.
func IsMissingArgument(err error) bool {
	return errors.Is(err, ErrMissingArgument)
}

// IsMalformedArgument checks if an error is a malformed argument fault.
func IsMalformedArgument(err error) bool {
	return errors.Is(err, ErrMalformedArgument)
}

// IsValidation checks if an error is either validation fault kind.
func IsValidation(err error) bool {
	return IsMissingArgument(err) || IsMalformedArgument(err)
}

// IsTransport checks if an error is a transport fault.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsUpstreamStatus checks if an error is an upstream status fault.
func IsUpstreamStatus(err error) bool {
	return errors.Is(err, ErrUpstreamStatus)
}

// IsUnexpected checks if an error is an unexpected fault.
func IsUnexpected(err error) bool {
	return errors.Is(err, ErrUnexpected)
}

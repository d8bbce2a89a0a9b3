// Package clients provides the shared HTTP transport used by every
// capability adapter to reach its backend resource.
package clients

import "errors"

// Transport errors represent infrastructure failures below the adapter
// layer. Adapters classify them into diagnoses; they are never shown to a
// caller as-is.
var (
	// ErrCircuitOpen is returned when the circuit breaker is blocking
	// requests because the upstream looks unhealthy.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

package clients

import (
	"context"
	"fmt"
)

// HealthChecker reports a client as unhealthy while its circuit breaker is
// open. It deliberately makes no network call: probing the upstream on every
// readiness check would defeat the breaker.
type HealthChecker struct {
	name   string
	client *Client
}

// NewHealthChecker creates a health checker for one upstream client.
func NewHealthChecker(name string, client *Client) *HealthChecker {
	return &HealthChecker{
		name:   name,
		client: client,
	}
}

// Name returns the checker's unique identifier.
func (h *HealthChecker) Name() string {
	return h.name
}

// Check returns an error while the circuit breaker is open.
func (h *HealthChecker) Check(_ context.Context) error {
	if h.client.CircuitState() == StateOpen {
		return fmt.Errorf("%s: %w", h.name, ErrCircuitOpen)
	}

	return nil
}

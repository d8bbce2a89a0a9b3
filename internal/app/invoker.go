// Package app contains application services orchestrating domain logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/telcobridge/capgate/internal/capability"
)

// ErrOperationNotFound is returned when no registered operation matches
// the requested resource and operation names.
var ErrOperationNotFound = errors.New("operation not found")

// InvocationService executes registered capability operations by name.
// The registry is built once at startup; lookups and invocations are safe
// for concurrent use.
type InvocationService struct {
	registry *capability.Registry
	logger   *slog.Logger
}

// NewInvocationService creates an invocation service backed by a registry.
func NewInvocationService(registry *capability.Registry, logger *slog.Logger) *InvocationService {
	if logger == nil {
		logger = slog.Default()
	}

	return &InvocationService{
		registry: registry,
		logger:   logger,
	}
}

// Invoke looks up and executes one operation. The returned string is the
// operation's full result, success payload or diagnosis alike; the error is
// non-nil only when the (resource, operation) pair is not registered.
func (s *InvocationService) Invoke(ctx context.Context, resource, operation string, args capability.Arguments) (string, error) {
	inv, ok := s.registry.Lookup(resource, operation)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrOperationNotFound, resource, operation)
	}

	start := time.Now()
	result := inv.Invoke(ctx, args)

	s.logger.InfoContext(ctx, "operation invoked",
		slog.String("resource", resource),
		slog.String("operation", operation),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// Capabilities returns the descriptors of every registered operation in
// registration order.
func (s *InvocationService) Capabilities() []*capability.Invocation {
	return s.registry.List()
}

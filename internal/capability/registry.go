package capability

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateOperation is returned when two invocations register under the
// same (resource, operation) pair.
var ErrDuplicateOperation = errors.New("duplicate operation")

// Arguments carries the caller-supplied inputs keyed by parameter name.
// Absent keys read as empty strings; required-ness is the validator's job.
type Arguments map[string]string

// Get returns the argument value for name, or "" when absent.
func (a Arguments) Get(name string) string {
	return a[name]
}

// InvokeFunc executes one operation. It always returns a string: a success
// payload or a diagnosis, never a raised fault.
type InvokeFunc func(ctx context.Context, args Arguments) string

// Invocation pairs an operation descriptor with its function value. The
// registry hands these to the external invoker as a plain lookup table; no
// reflection is involved in dispatch.
type Invocation struct {
	// Resource names the owning backend resource.
	Resource string

	// Descriptor is the operation's self-description.
	Descriptor OperationDescriptor

	// Invoke is the bound operation function.
	Invoke InvokeFunc
}

// Registry maps (resource, operation) to invocations. It is populated once
// during startup and read-only afterwards; lookups from concurrent calls
// need no coordination beyond the internal lock.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*Invocation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Invocation)}
}

// Register adds an invocation. Returns an error on duplicates or incomplete
// entries; registration happens at startup, so the caller treats any error
// as fatal.
func (r *Registry) Register(inv *Invocation) error {
	if inv == nil || inv.Resource == "" || inv.Descriptor.Name == "" || inv.Invoke == nil {
		return errors.New("invocation requires resource, descriptor name and function")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey(inv.Resource, inv.Descriptor.Name)
	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, key)
	}

	r.order = append(r.order, key)
	r.entries[key] = inv

	return nil
}

// Lookup returns the invocation registered under (resource, operation).
func (r *Registry) Lookup(resource, operation string) (*Invocation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.entries[registryKey(resource, operation)]

	return inv, ok
}

// List returns all invocations in registration order.
func (r *Registry) List() []*Invocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Invocation, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.entries[key])
	}

	return out
}

// Len returns the number of registered invocations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func registryKey(resource, operation string) string {
	return resource + "." + operation
}

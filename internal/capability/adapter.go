package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/telcobridge/capgate/internal/domain"
)

// Transport is the HTTP collaborator every adapter calls through. It must be
// safe for concurrent use by multiple in-flight operations; auth and timeout
// policy are its concern, not the adapter's.
type Transport interface {
	Get(ctx context.Context, path string) (*http.Response, error)
	Post(ctx context.Context, path string, body io.Reader) (*http.Response, error)
	Put(ctx context.Context, path string, body io.Reader) (*http.Response, error)
	Delete(ctx context.Context, path string) (*http.Response, error)
}

// Adapter binds one backend resource to the shared execution protocol.
// It is stateless between calls: the only state is the immutable
// configuration set at construction.
type Adapter struct {
	resource   string
	transport  Transport
	classifier *Classifier
	logger     *slog.Logger
}

// AdapterConfig contains construction dependencies for an adapter.
type AdapterConfig struct {
	// Resource names the backend resource, e.g. "connections".
	Resource string

	// Transport is the HTTP client bound to the resource's base address.
	Transport Transport

	// Logger is the diagnostics sink. Defaults to slog.Default() if nil.
	Logger *slog.Logger
}

// NewAdapter creates an adapter. Panics if Resource or Transport is absent:
// an adapter that cannot reach its backend must fail at startup, not serve
// degraded behavior.
func NewAdapter(cfg AdapterConfig) *Adapter {
	if cfg.Resource == "" {
		panic("capability: Resource is required")
	}

	if cfg.Transport == nil {
		panic("capability: Transport is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("resource", cfg.Resource))

	return &Adapter{
		resource:   cfg.Resource,
		transport:  cfg.Transport,
		classifier: NewClassifier(logger),
		logger:     logger,
	}
}

// Resource returns the backend resource name.
func (a *Adapter) Resource() string {
	return a.resource
}

// Classify converts a fault into the user-facing diagnosis.
func (a *Adapter) Classify(ctx context.Context, operation string, err error) string {
	return a.classifier.Classify(ctx, operation, err)
}

// execute performs the request-building, transport and status-inspection
// steps of the protocol and returns the raw success body. Any failure comes
// back as a typed fault for the classifier; the payload travels verbatim,
// it was already validated as JSON and is never re-encoded.
func (a *Adapter) execute(ctx context.Context, operation, method, path, payload string) (string, error) {
	a.logger.DebugContext(ctx, "executing operation",
		slog.String("operation", operation),
		slog.String("method", method),
		slog.String("path", path),
	)

	resp, err := a.send(ctx, method, path, payload)
	if err != nil {
		return "", domain.NewTransportError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Best effort: a body we fail to read is simply absent from the
		// diagnosis.
		body, _ := io.ReadAll(resp.Body)

		return "", domain.NewUpstreamStatusError(operation, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewUnexpectedError(operation, err)
	}

	a.logger.DebugContext(ctx, "operation completed",
		slog.String("operation", operation),
		slog.Int("status", resp.StatusCode),
	)

	return string(body), nil
}

// send dispatches to the transport method fixed for the operation.
func (a *Adapter) send(ctx context.Context, method, path, payload string) (*http.Response, error) {
	switch method {
	case http.MethodGet:
		return a.transport.Get(ctx, path)
	case http.MethodPost:
		return a.transport.Post(ctx, path, strings.NewReader(payload))
	case http.MethodPut:
		return a.transport.Put(ctx, path, strings.NewReader(payload))
	case http.MethodDelete:
		return a.transport.Delete(ctx, path)
	default:
		return nil, domain.NewUnexpectedError(path, errUnsupportedMethod(method))
	}
}

// Passthrough executes an operation whose output contract is the verbatim
// upstream body.
func (a *Adapter) Passthrough(ctx context.Context, operation, method, path, payload string) string {
	body, err := a.execute(ctx, operation, method, path, payload)
	if err != nil {
		return a.Classify(ctx, operation, err)
	}

	return body
}

// Confirm executes a delete-style operation and returns the given
// human-readable confirmation instead of the (usually empty) response body.
func (a *Adapter) Confirm(ctx context.Context, operation, method, path, confirmation string) string {
	if _, err := a.execute(ctx, operation, method, path, ""); err != nil {
		return a.Classify(ctx, operation, err)
	}

	return confirmation
}

// Typed executes an operation with a declared output shape: the body is
// deserialized into T and re-serialized as pretty-printed JSON. A body that
// does not decode is an unexpected fault, never a silent nil.
func Typed[T any](a *Adapter, ctx context.Context, operation, method, path, payload string) string {
	body, err := a.execute(ctx, operation, method, path, payload)
	if err != nil {
		return a.Classify(ctx, operation, err)
	}

	var shaped T

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()

	if err := dec.Decode(&shaped); err != nil {
		return a.Classify(ctx, operation, domain.NewUnexpectedError(operation, err))
	}

	pretty, err := json.MarshalIndent(shaped, "", "  ")
	if err != nil {
		return a.Classify(ctx, operation, domain.NewUnexpectedError(operation, err))
	}

	return string(pretty)
}

// errUnsupportedMethod keeps the unreachable default arm honest.
type errUnsupportedMethod string

func (e errUnsupportedMethod) Error() string {
	return "unsupported HTTP method " + string(e)
}

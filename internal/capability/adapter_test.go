package capability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyTransport records every call and replays canned responses.
type spyTransport struct {
	calls    int
	methods  []string
	paths    []string
	bodies   []string
	status   int
	respBody string
	err      error
}

func (s *spyTransport) respond() (*http.Response, error) {
	s.calls++

	if s.err != nil {
		return nil, s.err
	}

	status := s.status
	if status == 0 {
		status = http.StatusOK
	}

	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(s.respBody)),
	}, nil
}

func (s *spyTransport) Get(_ context.Context, path string) (*http.Response, error) {
	s.methods = append(s.methods, http.MethodGet)
	s.paths = append(s.paths, path)

	return s.respond()
}

func (s *spyTransport) Post(_ context.Context, path string, body io.Reader) (*http.Response, error) {
	s.methods = append(s.methods, http.MethodPost)
	s.paths = append(s.paths, path)
	s.recordBody(body)

	return s.respond()
}

func (s *spyTransport) Put(_ context.Context, path string, body io.Reader) (*http.Response, error) {
	s.methods = append(s.methods, http.MethodPut)
	s.paths = append(s.paths, path)
	s.recordBody(body)

	return s.respond()
}

func (s *spyTransport) Delete(_ context.Context, path string) (*http.Response, error) {
	s.methods = append(s.methods, http.MethodDelete)
	s.paths = append(s.paths, path)

	return s.respond()
}

func (s *spyTransport) recordBody(body io.Reader) {
	b, _ := io.ReadAll(body)
	s.bodies = append(s.bodies, string(b))
}

func newTestAdapter(transport Transport) *Adapter {
	return NewAdapter(AdapterConfig{
		Resource:  "connections",
		Transport: transport,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestNewAdapterPanicsWithoutRequiredConfig(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewAdapter(AdapterConfig{Transport: &spyTransport{}})
	})

	assert.Panics(t, func() {
		NewAdapter(AdapterConfig{Resource: "connections"})
	})
}

func TestPassthroughReturnsBodyVerbatim(t *testing.T) {
	t.Parallel()

	spy := &spyTransport{respBody: `{"data":[{"id":"c1"}],"meta":{"total_results":1}}`}
	a := newTestAdapter(spy)

	got := a.Passthrough(context.Background(), "connections.list", http.MethodGet, "/v2/connections", "")

	assert.Equal(t, `{"data":[{"id":"c1"}],"meta":{"total_results":1}}`, got)
	assert.Equal(t, 1, spy.calls)
	assert.Equal(t, []string{"/v2/connections"}, spy.paths)
}

func TestPassthroughSendsPayloadUnreencoded(t *testing.T) {
	t.Parallel()

	// Whitespace and key order must survive: the payload passes through
	// exactly as the caller wrote it.
	payload := `{ "b": 1, "a": 2 }`
	spy := &spyTransport{respBody: `{}`}
	a := newTestAdapter(spy)

	a.Passthrough(context.Background(), "connections.update", http.MethodPut, "/v2/connections/c1", payload)

	require.Len(t, spy.bodies, 1)
	assert.Equal(t, payload, spy.bodies[0])
	assert.Equal(t, []string{http.MethodPut}, spy.methods)
}

func TestExecuteClassifiesTransportFailure(t *testing.T) {
	t.Parallel()

	spy := &spyTransport{err: errors.New("dial tcp: connection refused")}
	a := newTestAdapter(spy)

	got := a.Passthrough(context.Background(), "connections.list", http.MethodGet, "/v2/connections", "")

	assert.True(t, strings.HasPrefix(got, "Error:"))
	assert.Contains(t, got, "connection refused")
}

func TestExecuteClassifiesUpstreamStatus(t *testing.T) {
	t.Parallel()

	t.Run("401 yields unauthorized diagnosis", func(t *testing.T) {
		t.Parallel()

		spy := &spyTransport{status: http.StatusUnauthorized, respBody: `{"errors":[{"title":"Authentication failed"}]}`}
		a := newTestAdapter(spy)

		got := a.Passthrough(context.Background(), "connections.list", http.MethodGet, "/v2/connections", "")

		assert.True(t, strings.HasPrefix(got, "Error:"))
		assert.Contains(t, got, "Unauthorized")
		assert.Contains(t, got, "Authentication failed")
	})

	t.Run("404 yields not found diagnosis", func(t *testing.T) {
		t.Parallel()

		spy := &spyTransport{status: http.StatusNotFound}
		a := newTestAdapter(spy)

		got := a.Passthrough(context.Background(), "connections.get", http.MethodGet, "/v2/connections/nope", "")

		assert.Contains(t, got, "not found")
	})
}

func TestTypedPrettyPrintsDeclaredShape(t *testing.T) {
	t.Parallel()

	type connection struct {
		ID     string `json:"id,omitempty"`
		Status string `json:"status,omitempty"`
	}

	spy := &spyTransport{respBody: `{"id":"42","status":"ACTIVE"}`}
	a := newTestAdapter(spy)

	got := Typed[connection](a, context.Background(), "connections.get", http.MethodGet, "/v2/connections/42", "")

	assert.Contains(t, got, "\"id\": \"42\"")
	assert.Contains(t, got, "\"status\": \"ACTIVE\"")
	assert.True(t, strings.HasPrefix(got, "{"))
}

func TestTypedRoundTripKeepsAllFields(t *testing.T) {
	t.Parallel()

	type connection struct {
		ID             string `json:"id,omitempty"`
		ConnectionName string `json:"connection_name,omitempty"`
		Active         *bool  `json:"active,omitempty"`
		Retries        *int   `json:"retries,omitempty"`
	}

	// Falsy values the upstream supplied must survive re-encoding, while
	// fields the upstream omitted must stay absent.
	spy := &spyTransport{respBody: `{"id":"c1","connection_name":"trunk","active":false,"retries":0}`}
	a := newTestAdapter(spy)

	got := Typed[connection](a, context.Background(), "connections.get", http.MethodGet, "/v2/connections/c1", "")

	assert.Contains(t, got, `"id": "c1"`)
	assert.Contains(t, got, `"connection_name": "trunk"`)
	assert.Contains(t, got, `"active": false`)
	assert.Contains(t, got, `"retries": 0`)
}

func TestTypedOmitsAbsentOptionalFields(t *testing.T) {
	t.Parallel()

	type connection struct {
		ID     string `json:"id,omitempty"`
		Active *bool  `json:"active,omitempty"`
	}

	spy := &spyTransport{respBody: `{"id":"c2"}`}
	a := newTestAdapter(spy)

	got := Typed[connection](a, context.Background(), "connections.get", http.MethodGet, "/v2/connections/c2", "")

	assert.Contains(t, got, `"id": "c2"`)
	assert.NotContains(t, got, "active")
}

func TestTypedDecodeFailureIsUnexpectedFault(t *testing.T) {
	t.Parallel()

	type connection struct {
		ID string `json:"id"`
	}

	spy := &spyTransport{respBody: `<html>not json</html>`}
	a := newTestAdapter(spy)

	got := Typed[connection](a, context.Background(), "connections.get", http.MethodGet, "/v2/connections/c1", "")

	assert.True(t, strings.HasPrefix(got, "Error:"))
	assert.Contains(t, got, "connections.get failed.")
}

func TestConfirmReturnsHumanReadableConfirmation(t *testing.T) {
	t.Parallel()

	spy := &spyTransport{status: http.StatusNoContent}
	a := newTestAdapter(spy)

	got := a.Confirm(context.Background(), "connections.delete", http.MethodDelete,
		"/v2/connections/99", "Connection 99 has been deleted.")

	assert.Equal(t, "Connection 99 has been deleted.", got)
	assert.Contains(t, got, "99")
	assert.Equal(t, []string{http.MethodDelete}, spy.methods)
}

func TestConfirmClassifiesFailure(t *testing.T) {
	t.Parallel()

	spy := &spyTransport{status: http.StatusNotFound}
	a := newTestAdapter(spy)

	got := a.Confirm(context.Background(), "connections.delete", http.MethodDelete,
		"/v2/connections/99", "Connection 99 has been deleted.")

	assert.True(t, strings.HasPrefix(got, "Error:"))
	assert.Contains(t, got, "not found")
}

func TestRepeatedReadsAreIdempotent(t *testing.T) {
	t.Parallel()

	type connection struct {
		ID     string `json:"id,omitempty"`
		Status string `json:"status,omitempty"`
	}

	spy := &spyTransport{respBody: `{"id":"42","status":"ACTIVE"}`}
	a := newTestAdapter(spy)

	ctx := context.Background()
	first := Typed[connection](a, ctx, "connections.get", http.MethodGet, "/v2/connections/42", "")
	second := Typed[connection](a, ctx, "connections.get", http.MethodGet, "/v2/connections/42", "")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, spy.calls)
}

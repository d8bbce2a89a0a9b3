package clients

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcobridge/capgate/internal/platform/config"
)

func testClientLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, baseURL string, opts func(*Config)) *Client {
	t.Helper()

	cfg := &Config{
		BaseURL:     baseURL,
		ServiceName: "connections",
		Timeout:     5 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 2,
		},
		Logger: testClientLogger(),
	}

	if opts != nil {
		opts(cfg)
	}

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		assert.ErrorContains(t, err, "config is required")
	})

	t.Run("missing base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(&Config{ServiceName: "connections"})
		assert.ErrorContains(t, err, "base URL is required")
	})

	t.Run("whitespace base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(&Config{BaseURL: "   ", ServiceName: "connections"})
		assert.ErrorContains(t, err, "base URL is required")
	})

	t.Run("missing service name", func(t *testing.T) {
		t.Parallel()

		_, err := New(&Config{BaseURL: "http://localhost:4010"})
		assert.ErrorContains(t, err, "service name is required")
	})
}

func TestClientBuildsURLFromBase(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Trailing slash on the base URL must not produce a double slash.
	client := newTestClient(t, server.URL+"/", nil)

	resp, err := client.Get(context.Background(), "/v2/connections?page%5Bsize%5D=10")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "/v2/connections", gotPath)
	assert.Equal(t, "page%5Bsize%5D=10", gotQuery)
}

func TestClientInjectsAuthAndContentType(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(cfg *Config) {
		cfg.AuthFunc = func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer test-key")
		}
	})

	resp, err := client.Post(context.Background(), "/v2/messages",
		strings.NewReader(`{"from":"+15550100"}`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"from":"+15550100"}`, gotBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientMakesExactlyOneAttempt(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	resp, err := client.Get(context.Background(), "/v2/connections")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	// Non-2xx responses come back to the caller for classification;
	// nothing in the client retries them.
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestClientCircuitOpensAfterTransportFailures(t *testing.T) {
	t.Parallel()

	// A server that is immediately closed gives us a connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL, nil)

	ctx := context.Background()
	for range 3 {
		_, err := client.Get(ctx, "/v2/connections")
		require.Error(t, err)
	}

	assert.Equal(t, StateOpen, client.CircuitState())

	_, err := client.Get(ctx, "/v2/connections")
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestClientPropagatesContextCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-started
		cancel()
	}()

	_, err := client.Get(ctx, "/v2/connections")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHealthCheckerReportsCircuitState(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := newTestClient(t, server.URL, nil)
	checker := NewHealthChecker("connections", client)

	assert.Equal(t, "connections", checker.Name())
	assert.NoError(t, checker.Check(context.Background()))

	ctx := context.Background()
	for range 3 {
		_, _ = client.Get(ctx, "/v2/connections")
	}

	require.Equal(t, StateOpen, client.CircuitState())

	err := checker.Check(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

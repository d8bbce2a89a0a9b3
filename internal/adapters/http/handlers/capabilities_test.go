package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcobridge/capgate/internal/app"
	"github.com/telcobridge/capgate/internal/capability"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCapabilityRouter(t *testing.T) *gin.Engine {
	t.Helper()

	reg := capability.NewRegistry()

	require.NoError(t, reg.Register(&capability.Invocation{
		Resource: "connections",
		Descriptor: capability.OperationDescriptor{
			Name:        "get",
			Description: "Fetch a single connection by its identifier.",
			Parameters: []capability.ParameterDescriptor{
				capability.RequiredParam("connection_id", "Identifier of the connection."),
			},
			Result: "Pretty-printed JSON for the connection.",
		},
		Invoke: func(_ context.Context, args capability.Arguments) string {
			if args.Get("connection_id") == "" {
				return "Error: connections.get failed: invalid or missing argument: connection_id"
			}

			return `{"id":"` + args.Get("connection_id") + `"}`
		},
	}))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := app.NewInvocationService(reg, logger)
	handler := NewCapabilityHandler(service)

	router := gin.New()
	handler.RegisterRoutes(router.Group(""))

	return router
}

func TestCapabilityList(t *testing.T) {
	t.Parallel()

	router := newCapabilityRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/capabilities", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Operations []struct {
			Resource   string `json:"resource"`
			Operation  string `json:"operation"`
			Parameters []struct {
				Name     string `json:"name"`
				Required bool   `json:"required"`
			} `json:"parameters"`
		} `json:"operations"`
	}

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Operations, 1)
	assert.Equal(t, "connections", resp.Operations[0].Resource)
	assert.Equal(t, "get", resp.Operations[0].Operation)
	require.Len(t, resp.Operations[0].Parameters, 1)
	assert.Equal(t, "connection_id", resp.Operations[0].Parameters[0].Name)
	assert.True(t, resp.Operations[0].Parameters[0].Required)
}

func TestCapabilityInvoke(t *testing.T) {
	t.Parallel()

	t.Run("successful invocation", func(t *testing.T) {
		t.Parallel()

		router := newCapabilityRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/capabilities/connections/get",
			strings.NewReader(`{"arguments":{"connection_id":"c1"}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Resource  string `json:"resource"`
			Operation string `json:"operation"`
			Result    string `json:"result"`
		}

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "connections", resp.Resource)
		assert.Equal(t, "get", resp.Operation)
		assert.Equal(t, `{"id":"c1"}`, resp.Result)
	})

	t.Run("operation diagnosis rides a 200", func(t *testing.T) {
		t.Parallel()

		router := newCapabilityRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/capabilities/connections/get",
			strings.NewReader(`{"arguments":{}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Result string `json:"result"`
		}

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp.Result, "Error:"))
	})

	t.Run("unknown operation is 404", func(t *testing.T) {
		t.Parallel()

		router := newCapabilityRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/capabilities/connections/teleport",
			strings.NewReader(`{"arguments":{}}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		t.Parallel()

		router := newCapabilityRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/capabilities/connections/get",
			strings.NewReader(`{"arguments":`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})
}

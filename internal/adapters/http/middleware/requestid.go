// Package middleware provides the Gin middleware the gateway router stacks
// around the capability and health endpoints.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/telcobridge/capgate/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request identifier.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID keys the request ID in gin.Context.
	ContextKeyRequestID = "request_id"
)

// RequestID returns middleware that adopts the caller's X-Request-ID or
// mints a UUID when the header is absent. The ID is stored in gin.Context,
// echoed on the response, and attached to the context logger so every log
// record of the invocation carries it.
func RequestID() gin.HandlerFunc {
	return identifierMiddleware(identifierConfig{
		headerName:      HeaderRequestID,
		contextKey:      ContextKeyRequestID,
		contextEnricher: logging.WithRequestID,
	})
}

// GetRequestID returns the request ID, or "" when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	return identifierFromContext(c, ContextKeyRequestID)
}

// MustGetRequestID returns the request ID, falling back to "unknown" so log
// fields never end up empty.
func MustGetRequestID(c *gin.Context) string {
	if id := GetRequestID(c); id != "" {
		return id
	}

	return "unknown"
}

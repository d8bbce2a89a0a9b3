package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/telcobridge/capgate/internal/platform/logging"
)

const (
	// HeaderCorrelationID carries the cross-service transaction identifier.
	// A request ID names one HTTP exchange; the correlation ID follows the
	// whole provisioning flow as it hops between services.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID keys the correlation ID in gin.Context.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates X-Correlation-ID, minting
// a UUID when this gateway is the transaction origin. Like RequestID, the
// value is stored in gin.Context, echoed on the response, and bound to the
// context logger.
func CorrelationID() gin.HandlerFunc {
	return identifierMiddleware(identifierConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextEnricher: logging.WithCorrelationID,
	})
}

// GetCorrelationID returns the correlation ID, or "" when the middleware did
// not run.
func GetCorrelationID(c *gin.Context) string {
	return identifierFromContext(c, ContextKeyCorrelationID)
}

// MustGetCorrelationID returns the correlation ID, falling back to "unknown"
// so log fields never end up empty.
func MustGetCorrelationID(c *gin.Context) string {
	if id := GetCorrelationID(c); id != "" {
		return id
	}

	return "unknown"
}

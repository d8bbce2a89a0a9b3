package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/telcobridge/capgate/internal/adapters/http/dto"
	"github.com/telcobridge/capgate/internal/platform/logging"
)

// Timeout returns middleware that bounds a request's lifetime. When the
// deadline passes before the handler finishes, the client gets a 503 with a
// TIMEOUT envelope and the context is canceled so in-flight upstream calls
// stop. Handlers that ignore context cancellation keep running in the
// background.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return timeoutFunc(timeout, nil)
}

// TimeoutWithSkipPaths is Timeout with an exemption list, for endpoints that
// legitimately outlive the standard deadline.
func TimeoutWithSkipPaths(timeout time.Duration, skipPaths []string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return timeoutFunc(timeout, skip)
}

func timeoutFunc(timeout time.Duration, skip map[string]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exempt := skip[c.Request.URL.Path]; exempt {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		done := make(chan struct{})

		go func() {
			c.Next()
			close(done)
		}()

		select {
		case <-done:
			return
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				handleTimeout(c, timeout)
			}
		}
	}
}

// handleTimeout logs the expiry and writes the TIMEOUT envelope, unless the
// handler already produced a response.
func handleTimeout(c *gin.Context, timeout time.Duration) {
	ctxLogger := logging.FromContext(c.Request.Context())

	var traceID string
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		traceID = span.SpanContext().TraceID().String()
	}

	ctxLogger.Warn("request timeout",
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Duration("timeout", timeout),
		slog.String("trace_id", traceID),
	)

	errResp := dto.NewErrorResponse(
		dto.ErrorCodeTimeout,
		"request timeout exceeded",
	)
	if traceID != "" {
		errResp.TraceID = traceID
	}

	if !c.Writer.Written() {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errResp)
	} else {
		c.Abort()
	}
}

// SimpleTimeout only installs the deadline and lets handlers surface the
// expiry themselves. Capability invocations prefer this: an expired upstream
// call comes back as a diagnosis in a 200, not a 503. This is the variant the
// router wires for the API group.
func SimpleTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

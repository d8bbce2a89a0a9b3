package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/telcobridge/capgate/internal/adapters/http/dto"
	"github.com/telcobridge/capgate/internal/app"
	"github.com/telcobridge/capgate/internal/platform/logging"
)

// MapError maps a service error to an HTTP status code and error response.
// Operation results never arrive here: a registered operation always returns
// a string, so the only service errors are lookup and binding failures.
func MapError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	if errors.Is(err, app.ErrOperationNotFound) {
		return http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrorCodeNotFound,
			err.Error(),
		)
	}

	// Unknown errors get a generic message to avoid leaking internals
	return http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrorCodeInternal,
		"an internal error occurred",
	)
}

// RespondWithError writes an error response to the gin.Context, including
// the trace ID when one is available.
func RespondWithError(c *gin.Context, err error) {
	status, errResp := MapError(err)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors such as request binding failures.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := dto.NewErrorResponse(code, message)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	status := dto.HTTPStatusFromCode(code)
	c.JSON(status, errResp)
}

package capability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/telcobridge/capgate/internal/domain"
)

// maxDiagnosticBody caps the upstream response body carried in a diagnosis
// so a misbehaving upstream cannot produce unbounded diagnostic strings.
const maxDiagnosticBody = 2048

// Classifier converts a fault into the single user-facing diagnosis string
// and emits exactly one structured log record per classification. It is the
// terminal handler: it never raises further faults and never retries.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier creates a classifier. Defaults logger to slog.Default()
// if nil.
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Classifier{logger: logger}
}

// Classify maps a fault raised during operation to its diagnosis.
// The returned string always begins with "Error:" so callers can
// distinguish failures from success payloads.
func (c *Classifier) Classify(ctx context.Context, operation string, err error) string {
	logger := c.logger

	var (
		missing   *domain.MissingArgumentError
		malformed *domain.MalformedArgumentError
		transport *domain.TransportError
		upstream  *domain.UpstreamStatusError
	)

	switch {
	case errors.As(err, &missing):
		logger.WarnContext(ctx, "operation rejected by validation",
			slog.String("operation", operation),
			slog.String("fault_kind", "missing_argument"),
			slog.String("argument", missing.Argument),
		)

		return fmt.Sprintf("Error: %s failed: invalid or missing argument: %s", operation, err.Error())

	case errors.As(err, &malformed):
		logger.WarnContext(ctx, "operation rejected by validation",
			slog.String("operation", operation),
			slog.String("fault_kind", "malformed_argument"),
			slog.String("argument", malformed.Argument),
			slog.String("reason", malformed.Reason),
		)

		return fmt.Sprintf("Error: %s failed: invalid or missing argument: %s", operation, err.Error())

	case errors.As(err, &upstream):
		body := truncate(upstream.Body, maxDiagnosticBody)

		logger.WarnContext(ctx, "upstream returned error status",
			slog.String("operation", operation),
			slog.String("fault_kind", "http"),
			slog.Int("status", upstream.StatusCode),
			slog.String("body", body),
		)

		diagnosis := fmt.Sprintf("Error: %s failed: %s (HTTP %d)",
			operation, statusPhrase(upstream.StatusCode), upstream.StatusCode)
		if body != "" {
			diagnosis += " Response body: " + body
		}

		return diagnosis

	case errors.As(err, &transport):
		logger.ErrorContext(ctx, "transport failure",
			slog.String("operation", operation),
			slog.String("fault_kind", "transport"),
			slog.Any("error", transport.Cause),
		)

		if errors.Is(transport.Cause, context.Canceled) ||
			errors.Is(transport.Cause, context.DeadlineExceeded) {
			return fmt.Sprintf("Error: %s failed. Request canceled or timed out: %v",
				operation, transport.Cause)
		}

		return fmt.Sprintf("Error: %s failed. %v", operation, transport.Cause)

	default:
		logger.ErrorContext(ctx, "unexpected failure",
			slog.String("operation", operation),
			slog.String("fault_kind", "unexpected"),
			slog.Any("error", err),
		)

		var unexpected *domain.UnexpectedError
		if errors.As(err, &unexpected) {
			return fmt.Sprintf("Error: %s failed. %v", operation, unexpected.Cause)
		}

		return fmt.Sprintf("Error: %s failed. %v", operation, err)
	}
}

// statusPhrase maps an upstream status code to its documented phrase.
func statusPhrase(code int) string {
	switch code {
	case 400:
		return "bad request, invalid parameters"
	case 401:
		return "Unauthorized, check credentials"
	case 403:
		return "forbidden"
	case 404:
		return "not found"
	case 429:
		return "rate limit exceeded, retry later"
	case 500:
		return "upstream internal error"
	case 503:
		return "upstream unavailable"
	default:
		return fmt.Sprintf("HTTP error %d", code)
	}
}

// truncate bounds s to max bytes, marking elided content. The cut backs up
// to a rune boundary so it never leaves a partial UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}

	return s[:max] + "... (truncated)"
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Context tests

func TestFromContext_NilContext(t *testing.T) {
	logger := FromContext(nil) //nolint:staticcheck // Testing nil guard intentionally
	assert.NotNil(t, logger)
	assert.Equal(t, defaultLogger, logger)
}

func TestFromContext_NoLogger(t *testing.T) {
	ctx := context.Background()
	logger := FromContext(ctx)
	assert.NotNil(t, logger)
	assert.Equal(t, defaultLogger, logger)
}

func TestFromContext_WithLogger(t *testing.T) {
	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithContext(context.Background(), customLogger)
	logger := FromContext(ctx)
	assert.NotNil(t, logger)
	assert.Equal(t, customLogger, logger)
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")

	FromContext(ctx).InfoContext(ctx, "test message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "req-123", logEntry["request_id"])
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithTraceID(ctx, "trace-456")

	FromContext(ctx).InfoContext(ctx, "test message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "trace-456", logEntry["trace_id"])
}

func TestWithCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := WithContext(context.Background(), logger)
	ctx = WithCorrelationID(ctx, "corr-789")

	FromContext(ctx).InfoContext(ctx, "test message")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "corr-789", logEntry["correlation_id"])
}

func TestSetDefault(t *testing.T) {
	originalDefault := defaultLogger

	customLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetDefault(customLogger)

	assert.Equal(t, customLogger, FromContext(context.Background()))
	assert.Equal(t, customLogger, defaultLogger)

	SetDefault(originalDefault)
}

// Logger tests

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:   "info",
		Format:  "json",
		Service: "capgate-test",
		Version: "1.2.3",
	}, &buf)

	logger.Info("hello")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "hello", logEntry["msg"])
	assert.Equal(t, "capgate-test", logEntry["service_name"])
	assert.Equal(t, "1.2.3", logEntry["service_version"])
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:  "info",
		Format: "text",
	}, &buf)

	logger.Info("hello text")

	assert.Contains(t, buf.String(), "hello text")
	assert.Contains(t, buf.String(), "msg=")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:  "warn",
		Format: "json",
	}, &buf)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	output := buf.String()
	assert.NotContains(t, output, "dropped")
	assert.Contains(t, output, "kept")
}

func TestNewWithWriter_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capgate.log")

	var buf bytes.Buffer

	logger := NewWithWriter(Config{
		Level:  "info",
		Format: "text",
		File: FileConfig{
			Enabled:   true,
			Path:      path,
			MaxSizeMB: 1,
		},
	}, &buf)

	logger.Info("to both sinks")

	// Terminal sink gets the text rendering.
	assert.Contains(t, buf.String(), "to both sinks")

	// File sink always gets JSON.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both sinks"`)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

// Redaction tests

func TestRedaction_SensitiveFieldNames(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("credentials in attrs",
		slog.String("api_key", "KEY0123456789ABCDEF0_secretpart"),
		slog.String("password", "hunter2"),
		slog.String("connection_id", "conn-1"),
	)

	output := buf.String()
	assert.NotContains(t, output, "hunter2")
	assert.NotContains(t, output, "secretpart")
	assert.Contains(t, output, "conn-1")
}

func TestRedaction_BearerTokenValue(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("outbound request", slog.String("header", "Bearer abc.def.ghi"))

	assert.NotContains(t, buf.String(), "abc.def.ghi")
}

func TestRedaction_PlainValuesUntouched(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWithWriter(Config{Level: "info", Format: "json"}, &buf)

	logger.Info("operation invoked",
		slog.String("resource", "connections"),
		slog.String("operation", "list"),
	)

	output := buf.String()
	assert.Contains(t, output, "connections")
	assert.Contains(t, output, "list")
}

// MultiHandler tests

func TestMultiHandler_FanOut(t *testing.T) {
	var first, second bytes.Buffer

	handler := NewMultiHandler(
		slog.NewJSONHandler(&first, nil),
		slog.NewJSONHandler(&second, nil),
	)

	logger := slog.New(handler)
	logger.Info("fan out", slog.String("key", "value"))

	assert.Contains(t, first.String(), "fan out")
	assert.Contains(t, second.String(), "fan out")
	assert.Contains(t, first.String(), `"key":"value"`)
}

func TestMultiHandler_EnabledWhenAnyHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer

	quiet := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})
	verbose := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	handler := NewMultiHandler(quiet, verbose)

	assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	handler := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler).With(slog.String("component", "gateway"))

	logger.Info("attributed")

	assert.Contains(t, buf.String(), `"component":"gateway"`)
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	handler := NewMultiHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler).WithGroup("upstream")

	logger.Info("grouped", slog.String("name", "connections"))

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	group, ok := logEntry["upstream"].(map[string]interface{})
	require.True(t, ok, "expected upstream group, got %s", buf.String())
	assert.Equal(t, "connections", group["name"])
}

func TestLevelFilteringAcrossFormats(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewWithWriter(Config{Level: "error", Format: format}, &buf)
			logger.Info("should not appear")

			assert.False(t, strings.Contains(buf.String(), "should not appear"))
		})
	}
}

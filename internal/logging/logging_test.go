package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestColoredHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: "info"}).With("session_id", "s1")

	ctx := WithRequestID(context.Background(), "req-42")
	logger.InfoContext(ctx, "milestone reached", "threshold", 50)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "[req-42]")
	assert.Contains(t, out, "milestone reached")
	assert.Contains(t, out, `"s1"`)
	assert.Contains(t, out, "threshold")
	assert.NotContains(t, out, "hidden")
}

func TestJSONHandlerCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Format: "json"})

	logger.InfoContext(WithRequestID(context.Background(), "abc"), "saved")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec["request_id"])
	assert.Equal(t, "saved", rec["msg"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "x", RequestID(WithRequestID(context.Background(), "x")))
}

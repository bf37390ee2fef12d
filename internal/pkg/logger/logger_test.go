package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLoggerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("formatted response", "path", "/", "bytes", 42)

	entry := decodeLine(t, &buf)
	assert.Equal(t, "formatted response", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "/", entry["path"])
	assert.Equal(t, "42", entry["bytes"])
	assert.Contains(t, entry, "time")
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.NotZero(t, buf.Len())
}

func TestLoggerRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("request", "Authorization", "Bearer abcdefghijkl", "session_token", "short", "path", "/x")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "Be[REDACTED]", entry["Authorization"])
	assert.Equal(t, "[REDACTED]", entry["session_token"])
	assert.Equal(t, "/x", entry["path"])
}

func TestLoggerOddFieldsDropsTrailingKey(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Error("oops", "a", 1, "dangling")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "1", entry["a"])
	assert.NotContains(t, entry, "dangling")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "[REDACTED]", Mask("abc"))
	assert.Equal(t, "ab[REDACTED]", Mask("abcdefghi"))
}

func TestSetLevelName(t *testing.T) {
	require.NoError(t, SetLevelName("debug"))
	assert.Error(t, SetLevelName("loud"))
	require.NoError(t, SetLevelName("info"))
}

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("", true))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", false))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose", false))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARNING ", false))
	assert.Equal(t, slog.LevelError, ParseLevel("error", true))
	assert.Equal(t, LevelCritical, ParseLevel("fatal", false))
}

func TestServerErrorWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	log.ServerError("db: query failed", errors.New("boom"), "table", "users")
	log.ClientError("skipped", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "db: query failed", entry["msg"])
	assert.Equal(t, "boom", entry["err"])
	assert.Equal(t, "users", entry["table"])
}

func TestClientErrorLogsAtWarn(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf, Level: "warn"}).ClientError("http: bad request body", errors.New("unexpected EOF"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "unexpected EOF", entry["err"])
}

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf, Format: "text", Level: "critical"}).Critical("app: init failed")

	assert.True(t, strings.Contains(buf.String(), "level=CRITICAL"), buf.String())
}

func TestLevelFiltersDebugOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Output: &buf}).Debug("noise")
	assert.Empty(t, buf.String())

	New(Options{Output: &buf, Development: true}).Debug("noise")
	assert.Contains(t, buf.String(), "noise")
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*3600)
	logger := New(&buf, loc)

	logger.Error("db_migration_failed", "component", "database")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "db_migration_failed", entry["msg"])
	assert.Equal(t, "database", entry["component"])

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	assert.Contains(t, ts, "+07:00")
	_, hasTime := entry["time"]
	assert.False(t, hasTime)
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))

	ctx = WithRequestID(ctx, "rid-1")
	assert.Equal(t, "rid-1", RequestID(ctx))
	assert.NotNil(t, FromContext(ctx))
}

func TestLowerLevel(t *testing.T) {
	assert.Equal(t, "warn", lowerLevel(slog.LevelWarn))
	assert.Equal(t, "debug", lowerLevel(slog.LevelDebug))
	assert.Equal(t, "info", lowerLevel("not a level"))
}

package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsErrorWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug", "json")

	ctx := logger.WithContext(context.WithValue(context.Background(), RequestIDKey, "abc"))
	err := errors.New("boom")
	Time(ctx, "runs.create")(&err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "abc", entry["req_id"])
	assert.Equal(t, "runs.create", entry["op"])
	assert.Equal(t, "boom", entry["error"])
}

func TestTimeSuccessIsDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json")

	ctx := logger.WithContext(context.Background())
	var err error
	Time(ctx, "runs.list")(&err)

	assert.Empty(t, buf.String())
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "loud", "json")

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

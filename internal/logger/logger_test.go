package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/text-game/internal/config"
)

func TestSetupWriterProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupWriter(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithSession(log, "abc").Info("turn", "verb", "look")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "turn", rec["msg"])
	assert.Equal(t, "abc", rec["session_id"])
	assert.Equal(t, "look", rec["verb"])
}

func TestSetupWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := SetupWriter(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

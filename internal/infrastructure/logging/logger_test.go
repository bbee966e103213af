package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestFromSettingsFallsBack(t *testing.T) {
	logger := FromSettings("chatty", false)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	dev := FromSettings("", true)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))
}

func TestJSONOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Component("orchestrator").With(zap.String("workspace_id", "ws_1")).
		Info("build started", zap.String("session_id", "build_1"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"build started"`)
	assert.Contains(t, string(data), `"logger":"orchestrator"`)
	assert.Contains(t, string(data), `"session_id":"build_1"`)
	assert.Contains(t, string(data), `"workspace_id":"ws_1"`)
}

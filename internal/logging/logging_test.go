package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/chatflow/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New(config.LogConfig{})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chatflow.log")

	logger, err := New(config.LogConfig{Path: path, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("channel activated")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "channel activated")
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatflow.log")

	logger, err := New(config.LogConfig{Path: path, Level: "chatty"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

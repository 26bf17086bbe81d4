package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/govswitch/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "govswitch.log")

	logger := New(config.LogConfig{Level: "debug", File: path})
	logger.Debug("probe attempt")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"probe attempt"`)
	assert.Contains(t, string(data), `"time":`)
}

func TestNew_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govswitch.log")

	logger := New(config.LogConfig{Level: "warn", File: path})
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_BadLevelDefaultsToInfo(t *testing.T) {
	logger := New(config.LogConfig{Level: "loud"})
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_UnwritableFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	logger := New(config.LogConfig{Level: "info", File: filepath.Join(blocker, "sub", "x.log")})
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestConsole(t *testing.T) {
	logger := Console(zapcore.DebugLevel)
	require.NotNil(t, logger)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestForCLI_ConsoleHonoursLevel(t *testing.T) {
	logger := ForCLI(config.LogConfig{Level: "debug"}, false)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger = ForCLI(config.LogConfig{Level: "error"}, false)
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestForCLI_BadLevelDefaultsToWarn(t *testing.T) {
	logger := ForCLI(config.LogConfig{Level: "loud"}, false)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestForCLI_VerboseWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govswitch.log")

	logger := ForCLI(config.LogConfig{Level: "error", File: path}, true)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestForCLI_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "govswitch.log")

	logger := ForCLI(config.LogConfig{Level: "info", File: path}, false)
	logger.Info("switching governor")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"switching governor"`)
}

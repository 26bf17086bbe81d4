// Package logging builds the process-wide zap logger.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/govswitch/internal/config"
)

// New creates a logger from log settings. Output goes to cfg.File when set,
// otherwise stderr. If the file cannot be opened it falls back to a stderr
// production logger so the caller always gets something usable.
func New(cfg config.LogConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = "json"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			zc.OutputPaths = []string{cfg.File}
			zc.ErrorOutputPaths = []string{cfg.File}
		}
	}

	logger, err := zc.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

// Console creates a human-readable logger on stderr for interactive
// commands run with --verbose.
func Console(level zapcore.Level) *zap.Logger {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = true

	logger, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ForCLI picks the logger for a command: debug on the console when verbose,
// the configured file when set, otherwise the console at cfg.Level.
func ForCLI(cfg config.LogConfig, verbose bool) *zap.Logger {
	switch {
	case verbose:
		return Console(zapcore.DebugLevel)
	case cfg.File != "":
		return New(cfg)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}
	return Console(level)
}

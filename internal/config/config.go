// Package config loads govswitch settings from a YAML file and GOVSWITCH_*
// environment variables. The governor table itself is compiled in and is
// not configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"go.yaml.in/yaml/v3"

	"github.com/eliteGoblin/govswitch/internal/domain"
	"github.com/eliteGoblin/govswitch/internal/usecase"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "GOVSWITCH"

// Keys
const (
	KeyLogLevel        = "log.level"
	KeyLogFile         = "log.file"
	KeyRetryMaxRetries = "retry.max_retries"
	KeyRetryDelay      = "retry.delay"
	KeyProbeTimeout    = "probe.timeout"
	KeyShell           = "shell"
	KeyNotify          = "notify"
)

// Lower bounds. The probe needs at least a millisecond so the timeout
// command never sees a zero duration, which would disable it.
const (
	MinRetryDelay   = time.Second
	MinProbeTimeout = time.Millisecond
)

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("config file already exists")

// LogConfig controls logger construction.
type LogConfig struct {
	Level string // zap level name
	File  string // Empty means stderr
}

// Config holds all runtime settings.
type Config struct {
	Log          LogConfig
	MaxRetries   int
	RetryDelay   time.Duration
	ProbeTimeout time.Duration
	Shell        string
	Notify       bool

	// Source is the file the settings came from, empty when only defaults
	// and environment were used.
	Source string
}

// Default returns the built-in settings.
func Default() *Config {
	retry := usecase.DefaultRetryConfig()
	return &Config{
		Log:          LogConfig{Level: "warn"},
		MaxRetries:   retry.MaxRetries,
		RetryDelay:   retry.Delay,
		ProbeTimeout: time.Second,
		Shell:        "sh",
	}
}

// Load reads settings from path. When explicit is false a missing file is
// not an error and defaults apply; an explicitly requested file must exist.
func Load(path string, explicit bool) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := ""
	if path != "" {
		_, statErr := os.Stat(path)
		switch {
		case statErr == nil:
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			source = path
		case explicit || !errors.Is(statErr, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", path, statErr)
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level: v.GetString(KeyLogLevel),
			File:  v.GetString(KeyLogFile),
		},
		MaxRetries:   v.GetInt(KeyRetryMaxRetries),
		RetryDelay:   v.GetDuration(KeyRetryDelay),
		ProbeTimeout: v.GetDuration(KeyProbeTimeout),
		Shell:        v.GetString(KeyShell),
		Notify:       v.GetBool(KeyNotify),
		Source:       source,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyRetryMaxRetries, d.MaxRetries)
	v.SetDefault(KeyRetryDelay, d.RetryDelay)
	v.SetDefault(KeyProbeTimeout, d.ProbeTimeout)
	v.SetDefault(KeyShell, d.Shell)
	v.SetDefault(KeyNotify, d.Notify)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("invalid %s: %d is negative", KeyRetryMaxRetries, c.MaxRetries)
	}
	if c.RetryDelay < MinRetryDelay {
		return fmt.Errorf("invalid %s: %s is below %s", KeyRetryDelay, c.RetryDelay, MinRetryDelay)
	}
	if c.ProbeTimeout < MinProbeTimeout {
		return fmt.Errorf("invalid %s: %s is below %s", KeyProbeTimeout, c.ProbeTimeout, MinProbeTimeout)
	}
	if strings.TrimSpace(c.Shell) == "" {
		return fmt.Errorf("invalid %s: empty", KeyShell)
	}
	return nil
}

// ControllerConfig maps settings onto the controller.
func (c *Config) ControllerConfig() usecase.ControllerConfig {
	return usecase.ControllerConfig{
		ProbeArgv: usecase.ProbeArgv(c.ProbeTimeout),
		Shell:     c.Shell,
		Retry: usecase.RetryConfig{
			MaxRetries: c.MaxRetries,
			Delay:      c.RetryDelay,
		},
	}
}

// document is the on-disk layout. Durations are kept as strings so the
// file stays human-editable.
type document struct {
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Retry struct {
		MaxRetries int    `yaml:"max_retries"`
		Delay      string `yaml:"delay"`
	} `yaml:"retry"`
	Probe struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"probe"`
	Shell  string `yaml:"shell"`
	Notify bool   `yaml:"notify"`
}

// Marshal encodes c as a config file.
func (c *Config) Marshal() ([]byte, error) {
	var doc document
	doc.Log.Level = c.Log.Level
	doc.Log.File = c.Log.File
	doc.Retry.MaxRetries = c.MaxRetries
	doc.Retry.Delay = c.RetryDelay.String()
	doc.Probe.Timeout = c.ProbeTimeout.String()
	doc.Shell = c.Shell
	doc.Notify = c.Notify

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// WriteDefault writes the built-in settings to path, with log.file set to
// logFile. An existing file is only replaced when force is set.
func WriteDefault(fs domain.FileSystemManager, path, logFile string, force bool) error {
	path = fs.ExpandHome(path)
	if fs.Exists(path) && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	cfg := Default()
	cfg.Log.File = logFile
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := fs.WriteAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Package config loads the runtime configuration of a member context from YAML.
//
// The file has the following structure:
//
//	mixed_content_interval: 500ms
//	undo_capacity: 100
//	diagnostics_limit: 256
//	report_broken_chains: false
//	log_level: warn
//
// Omitted keys take their defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMixedContentInterval = 500 * time.Millisecond
	DefaultUndoCapacity         = 100
	DefaultDiagnosticsLimit     = 256
	DefaultLogLevel             = "warn"
)

var (
	ErrNegativeInterval = errors.New("mixed_content_interval must not be negative")
	ErrNegativeCapacity = errors.New("undo_capacity must not be negative")
	ErrUnknownLogLevel  = errors.New("unknown log_level")
)

// Config tunes caching, history and diagnostics of a member context.
type Config struct {
	// MixedContentInterval is how long a computed mixed-content flag is reused.
	MixedContentInterval time.Duration `yaml:"mixed_content_interval"`
	// UndoCapacity is the maximum number of undo entries kept.
	UndoCapacity int `yaml:"undo_capacity"`
	// DiagnosticsLimit is the number of diagnostics kept per severity.
	DiagnosticsLimit int `yaml:"diagnostics_limit"`
	// ReportBrokenChains emits a diagnostic whenever a broken handle is read or written.
	ReportBrokenChains bool `yaml:"report_broken_chains"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is loaded.
func Default() Config {
	var c Config
	applyDefaults(&c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (Config, error) {
	var c Config

	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Marshal serializes a Config to YAML.
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MixedContentInterval < 0 {
		return ErrNegativeInterval
	}

	if c.UndoCapacity < 0 {
		return ErrNegativeCapacity
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// SlogLevel returns the slog level named by LogLevel, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}

	return level
}

// WithDefaults returns c with every omitted setting set to its default.
func (c Config) WithDefaults() Config {
	applyDefaults(&c)
	return c
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.MixedContentInterval == 0 {
		c.MixedContentInterval = DefaultMixedContentInterval
	}

	if c.UndoCapacity == 0 {
		c.UndoCapacity = DefaultUndoCapacity
	}

	if c.DiagnosticsLimit <= 0 {
		c.DiagnosticsLimit = DefaultDiagnosticsLimit
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, name)
	}
}

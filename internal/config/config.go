// Package config provides configuration types, defaults, and persistence for orgchart.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/orgchart/internal/flags"
	"github.com/zjrosen/orgchart/internal/log"
	"github.com/zjrosen/orgchart/internal/paths"
	"github.com/zjrosen/orgchart/internal/tracing"
)

// Config holds all configuration options for orgchart.
type Config struct {
	Log     LogConfig       `mapstructure:"log" yaml:"log"`
	Shell   ShellConfig     `mapstructure:"shell" yaml:"shell"`
	Cache   CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Tracing tracing.Config  `mapstructure:"tracing" yaml:"tracing"`
	Flags   map[string]bool `mapstructure:"flags" yaml:"flags"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	// Enabled turns on logging without --debug or ORGCHART_DEBUG.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path is the file log lines are appended to.
	// Default: orgchart.log
	Path string `mapstructure:"path" yaml:"path"`

	// Level is the minimum level written: "debug", "info", "warn" or "error".
	// Default: "info"
	Level string `mapstructure:"level" yaml:"level"`
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Prompt string `mapstructure:"prompt" yaml:"prompt"`
	Color  bool   `mapstructure:"color" yaml:"color"` // Only applies on a terminal
}

// CacheConfig holds report count cache settings.
type CacheConfig struct {
	// CountTTL bounds how long a cached report count is served.
	// Mutations flush the cache regardless. Default: 5m
	CountTTL time.Duration `mapstructure:"count_ttl" yaml:"count_ttl"`
}

// DefaultLogPath is the log file used when log.path is unset.
const DefaultLogPath = "orgchart.log"

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/orgchart/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	return paths.TracesFile()
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Enabled: false,
			Path:    DefaultLogPath,
			Level:   "info",
		},
		Shell: ShellConfig{
			Prompt: "org> ",
			Color:  true,
		},
		Cache: CacheConfig{
			CountTTL: 5 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
		Flags:   flags.Defaults(),
	}
}

// Validate checks cfg for values that cannot be used.
func Validate(cfg Config) error {
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if cfg.Log.Enabled && cfg.Log.Path == "" {
		return fmt.Errorf("log.path is required when log.enabled is true")
	}
	if cfg.Cache.CountTTL < 0 {
		return fmt.Errorf("cache.count_ttl must not be negative, got %s", cfg.Cache.CountTTL)
	}
	if err := cfg.Tracing.Validate(); err != nil {
		return err
	}
	for name := range cfg.Flags {
		if _, known := flags.Defaults()[name]; !known {
			log.Warn(log.CatConfig, "Unknown feature flag in config", "flag", name)
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# orgchart configuration

# Debug log (also enabled by --debug or ORGCHART_DEBUG=1)
log:
  enabled: false
  path: orgchart.log
  level: info        # debug, info, warn or error

# Interactive shell
shell:
  prompt: "org> "
  color: true        # Only applies when output is a terminal

# Report count cache (see flags.count-cache)
cache:
  count_ttl: 5m

# OpenTelemetry tracing
tracing:
  enabled: false
  exporter: file     # none, file, stdout or otlp
  file_path: ""      # Defaults to ~/.config/orgchart/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
  service_name: orgchart

# Feature flags
flags:
  count-cache: true          # Serve report counts from a cache flushed on every change
  validate-mutations: false  # Check every registry invariant after each change
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// The template must stay loadable.
	var probe Config
	if err := yaml.Unmarshal([]byte(DefaultConfigTemplate()), &probe); err != nil {
		return fmt.Errorf("parsing config template: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/orgchart/internal/flags"
	"github.com/zjrosen/orgchart/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.False(t, cfg.Log.Enabled)
	require.Equal(t, DefaultLogPath, cfg.Log.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "org> ", cfg.Shell.Prompt)
	require.True(t, cfg.Shell.Color)
	require.Equal(t, 5*time.Minute, cfg.Cache.CountTTL)
	require.Equal(t, tracing.DefaultConfig(), cfg.Tracing)
	require.True(t, cfg.Flags[flags.FlagCountCache])
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: "log.level",
		},
		{
			name:    "enabled log without path",
			mutate:  func(c *Config) { c.Log.Enabled = true; c.Log.Path = "" },
			wantErr: "log.path",
		},
		{
			name:    "negative ttl",
			mutate:  func(c *Config) { c.Cache.CountTTL = -time.Second },
			wantErr: "cache.count_ttl",
		},
		{
			name: "file exporter without path",
			mutate: func(c *Config) {
				c.Tracing.Enabled = true
				c.Tracing.Exporter = tracing.ExporterFile
			},
			wantErr: "tracing.file_path",
		},
		{
			name:   "unknown flag only warns",
			mutate: func(c *Config) { c.Flags["turbo"] = true },
		},
		{
			name:   "empty level means info",
			mutate: func(c *Config) { c.Log.Level = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &cfg))

	require.Equal(t, Defaults(), cfg)
}

func TestDefaultConfigTemplate_LoadsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, 5*time.Minute, cfg.Cache.CountTTL)
	require.Equal(t, "org> ", cfg.Shell.Prompt)
	require.Equal(t, tracing.ExporterFile, cfg.Tracing.Exporter)
	require.False(t, cfg.Flags[flags.FlagValidateMutations])
}

func TestWriteDefaultConfig_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".orgchart", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

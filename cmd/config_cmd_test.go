package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/orgchart/internal/config"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "", "--config", path, "config", "init", path)
	require.NoError(t, err)
	require.Equal(t, "Wrote "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := writeConfig(t, "shell:\n  color: false\n")

	_, err := execute(t, "", "--config", path, "config", "init", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "shell:\n  color: false\n", string(data))

	_, err = execute(t, "", "--config", path, "config", "init", "--force", path)
	require.NoError(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := defaultConfig(t)

	out, err := execute(t, "", "--config", path, "config", "flag", "count-cache", "false")
	require.NoError(t, err)
	require.Equal(t, "Set count-cache=false in "+path+"\n", out)

	_, err = execute(t, "", "--config", path, "shell")
	require.NoError(t, err)
	require.False(t, cfg.Flags["count-cache"])
}

func TestConfigFlag_Errors(t *testing.T) {
	path := defaultConfig(t)

	_, err := execute(t, "", "--config", path, "config", "flag", "turbo", "true")
	require.ErrorContains(t, err, "unknown flag")

	_, err = execute(t, "", "--config", path, "config", "flag", "count-cache", "maybe")
	require.ErrorContains(t, err, "invalid value")
}

// Package paths provides path resolution utilities.
package paths

import (
	"os"
	"path/filepath"
)

const (
	// ProjectDir is the per-project directory holding the config file.
	ProjectDir = ".orgchart"
	// ConfigFileName is the config file name inside ProjectDir or UserConfigDir.
	ConfigFileName = "config.yaml"
)

// ProjectConfigFile is the config file looked up in the working directory.
var ProjectConfigFile = filepath.Join(ProjectDir, ConfigFileName)

// UserConfigDir returns ~/.config/orgchart, or "" if home dir unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "orgchart")
}

// TracesFile returns ~/.config/orgchart/traces/traces.jsonl, or "" if home dir
// unavailable.
func TracesFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// ResolveConfigFile picks the config file to load.
//
// An explicit path wins and is normalized:
//   - "/path/to/project" (a directory) -> "/path/to/project/.orgchart/config.yaml"
//   - "/path/to/project/.orgchart" -> "/path/to/project/.orgchart/config.yaml"
//   - anything else is used as given, whether or not it exists
//
// Without one, .orgchart/config.yaml in the working directory is used if it
// exists, then ~/.config/orgchart/config.yaml. found is false when nothing
// exists; path is then where a new config should be written.
func ResolveConfigFile(explicit string) (path string, found bool) {
	if explicit != "" {
		path = normalizeConfigPath(explicit)
		return path, exists(path)
	}

	if exists(ProjectConfigFile) {
		return ProjectConfigFile, true
	}
	if dir := UserConfigDir(); dir != "" {
		user := filepath.Join(dir, ConfigFileName)
		if exists(user) {
			return user, true
		}
	}
	return ProjectConfigFile, false
}

func normalizeConfigPath(path string) string {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	if filepath.Base(path) == ProjectDir {
		return filepath.Join(path, ConfigFileName)
	}
	return filepath.Join(path, ProjectDir, ConfigFileName)
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

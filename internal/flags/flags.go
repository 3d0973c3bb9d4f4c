// Package flags provides feature flags read from configuration.
// Flags are read-only after initialization and unknown flags are off.
package flags

import (
	"maps"

	"github.com/zjrosen/orgchart/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagCountCache controls whether report counts are served from the count cache.
	FlagCountCache = "count-cache"

	// FlagValidateMutations makes the service check every registry invariant after
	// each successful mutation and log any violation.
	FlagValidateMutations = "validate-mutations"
)

// Defaults returns the flag values used when the config file sets none.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagCountCache:        true,
		FlagValidateMutations: false,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. The map is copied; a nil map yields a
// registry with every flag disabled.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags), "flags", r.flags)
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}

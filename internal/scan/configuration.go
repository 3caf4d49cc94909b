package scan

import (
	"strings"

	"github.com/temirov/untracked/internal/repos/backends"
	"github.com/temirov/untracked/internal/ui"
)

const (
	rootsConfigurationKeyConstant    = "roots"
	colorConfigurationKeyConstant    = "color"
	backendsConfigurationKeyConstant = "backends"
	configurationKeySeparator        = "."
)

// CommandConfiguration captures persistent settings for scans.
type CommandConfiguration struct {
	Roots    []string `mapstructure:"roots"`
	Color    string   `mapstructure:"color"`
	Backends []string `mapstructure:"backends"`
}

// DefaultCommandConfiguration returns baseline configuration values for scans.
func DefaultCommandConfiguration() CommandConfiguration {
	defaultKinds := backends.DefaultKinds()
	backendNames := make([]string, 0, len(defaultKinds))
	for _, kind := range defaultKinds {
		backendNames = append(backendNames, string(kind))
	}
	return CommandConfiguration{
		Roots:    nil,
		Color:    string(ui.ColorModeAuto),
		Backends: backendNames,
	}
}

// DefaultConfigurationValues exposes DefaultCommandConfiguration as configuration keys under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	qualify := func(key string) string {
		if len(prefix) == 0 {
			return key
		}
		return prefix + configurationKeySeparator + key
	}
	return map[string]any{
		qualify(rootsConfigurationKeyConstant):    []string{},
		qualify(colorConfigurationKeyConstant):    defaults.Color,
		qualify(backendsConfigurationKeyConstant): defaults.Backends,
	}
}

// Sanitize trims configured values without resolving them.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Roots = trimEntries(configuration.Roots)
	sanitized.Color = strings.TrimSpace(configuration.Color)
	sanitized.Backends = trimEntries(configuration.Backends)
	return sanitized
}

func trimEntries(raw []string) []string {
	trimmed := make([]string, 0, len(raw))
	for _, entry := range raw {
		candidate := strings.TrimSpace(entry)
		if len(candidate) == 0 {
			continue
		}
		trimmed = append(trimmed, candidate)
	}
	return trimmed
}

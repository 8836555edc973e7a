package reconcile

import (
	"strings"

	"github.com/temirov/tmxaudit/internal/execshell"
)

const utilityExecutableConfigurationKeyConstant = "executable"

// CommandConfiguration captures configuration values for the audit command.
type CommandConfiguration struct {
	Executable string `mapstructure:"executable"`
}

// DefaultCommandConfiguration provides baseline configuration values for the audit command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Executable: string(execshell.CommandConfigurationUtility)}
}

// DefaultConfigurationValues returns the configuration defaults keyed beneath prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + "." + utilityExecutableConfigurationKeyConstant: defaults.Executable,
	}
}

func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = DefaultCommandConfiguration().Executable
	}
	return sanitized
}

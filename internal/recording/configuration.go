package recording

import (
	"strings"
	"time"
)

const (
	defaultExecutableConstant  = "asciinema"
	defaultTypingDelayConstant = 40 * time.Millisecond
	defaultCommandWaitConstant = 100 * time.Millisecond
	executableConfigurationKey = "executable"
	delayConfigurationKey      = "delay"
	waitConfigurationKey       = "wait"
	argumentsConfigurationKey  = "arguments"
	configurationKeySeparator  = "."
)

// Configuration stores options for the record command.
type Configuration struct {
	Executable string        `mapstructure:"executable"`
	Delay      time.Duration `mapstructure:"delay"`
	Wait       time.Duration `mapstructure:"wait"`
	Arguments  []string      `mapstructure:"arguments"`
}

// DefaultConfiguration supplies baseline values for recording.
func DefaultConfiguration() Configuration {
	return Configuration{
		Executable: defaultExecutableConstant,
		Delay:      defaultTypingDelayConstant,
		Wait:       defaultCommandWaitConstant,
	}
}

// DefaultConfigurationValues returns the defaults keyed for the configuration loader under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefix + configurationKeySeparator + executableConfigurationKey: defaults.Executable,
		prefix + configurationKeySeparator + delayConfigurationKey:      defaults.Delay.String(),
		prefix + configurationKeySeparator + waitConfigurationKey:       defaults.Wait.String(),
		prefix + configurationKeySeparator + argumentsConfigurationKey:  []string{},
	}
}

// Sanitize trims configured values, drops empty arguments, and restores
// defaults for a blank executable or negative timings.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.Executable = strings.TrimSpace(configuration.Executable)
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = defaults.Executable
	}
	if sanitized.Delay < 0 {
		sanitized.Delay = defaults.Delay
	}
	if sanitized.Wait < 0 {
		sanitized.Wait = defaults.Wait
	}

	sanitizedArguments := make([]string, 0, len(configuration.Arguments))
	for _, argument := range configuration.Arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 {
			continue
		}
		sanitizedArguments = append(sanitizedArguments, trimmedArgument)
	}
	sanitized.Arguments = sanitizedArguments

	return sanitized
}

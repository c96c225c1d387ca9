package recording

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/castfix/internal/utils"
)

const (
	commandUseConstant                    = "record <script> [recorder arguments...]"
	commandShortDescriptionConstant       = "Record a scripted terminal session with asciinema"
	commandLongDescriptionConstant        = "record starts asciinema, types each line of the script into the recorded shell, and ends the recording. Lines starting with \"#$ delay <ms>\" or \"#$ wait <ms>\" adjust typing speed and the pause between commands. Arguments after the script are passed to \"asciinema rec\"."
	commandExecutionErrorTemplateConstant = "record failed: %w"
	scriptOpenErrorTemplateConstant       = "unable to open script: %w"
	scriptParseErrorTemplateConstant      = "parsing script failed: %w"
	flagExecutableNameConstant            = "executable"
	flagExecutableDescriptionConstant     = "Recorder executable name or path"
	flagDelayNameConstant                 = "delay"
	flagDelayDescriptionConstant          = "Initial interval between typed characters"
	flagWaitNameConstant                  = "wait"
	flagWaitDescriptionConstant           = "Initial pause after each script command"
	scriptArgumentIndexConstant           = 0
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current recording configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the record command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Launcher              ProcessLauncher
	Locator               ExecutableLocator
	Sleeper               Sleeper
	ConfirmationInput     io.Reader
}

// Build constructs the record command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().SetInterspersed(false)
	command.Flags().String(flagExecutableNameConstant, "", flagExecutableDescriptionConstant)
	command.Flags().Duration(flagDelayNameConstant, 0, flagDelayDescriptionConstant)
	command.Flags().Duration(flagWaitNameConstant, 0, flagWaitDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, configurationError := builder.resolveConfiguration(command)
	if configurationError != nil {
		return configurationError
	}

	script, scriptError := loadScript(arguments[scriptArgumentIndexConstant])
	if scriptError != nil {
		return scriptError
	}

	recorderArguments := configuration.Arguments
	if len(arguments) > 1 {
		recorderArguments = arguments[1:]
	}

	recorder, recorderError := NewRecorder(builder.resolveLogger(), configuration, Dependencies{
		Launcher:          builder.resolveLauncher(command),
		Locator:           builder.Locator,
		Sleeper:           builder.Sleeper,
		ConfirmationInput: builder.ConfirmationInput,
	})
	if recorderError != nil {
		return recorderError
	}

	if recordError := recorder.Record(command.Context(), script, recorderArguments); recordError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, recordError)
	}

	return nil
}

func loadScript(scriptPath string) (Script, error) {
	scriptFile, openError := os.Open(scriptPath)
	if openError != nil {
		return Script{}, fmt.Errorf(scriptOpenErrorTemplateConstant, openError)
	}
	defer scriptFile.Close()

	script, parseError := ParseScript(scriptFile)
	if parseError != nil {
		return Script{}, fmt.Errorf(scriptParseErrorTemplateConstant, parseError)
	}
	return script, nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) (Configuration, error) {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command.Flags().Changed(flagExecutableNameConstant) {
		executableValue, executableError := command.Flags().GetString(flagExecutableNameConstant)
		if executableError != nil {
			return Configuration{}, executableError
		}
		configuration.Executable = strings.TrimSpace(executableValue)
	}

	if command.Flags().Changed(flagDelayNameConstant) {
		delayValue, delayError := command.Flags().GetDuration(flagDelayNameConstant)
		if delayError != nil {
			return Configuration{}, delayError
		}
		configuration.Delay = delayValue
	}

	if command.Flags().Changed(flagWaitNameConstant) {
		waitValue, waitError := command.Flags().GetDuration(flagWaitNameConstant)
		if waitError != nil {
			return Configuration{}, waitError
		}
		configuration.Wait = waitValue
	}

	return configuration.Sanitize(), nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveLauncher(command *cobra.Command) ProcessLauncher {
	if builder.Launcher != nil {
		return builder.Launcher
	}
	return OSProcessLauncher{
		Output:      utils.NewFlushingWriter(command.OutOrStdout()),
		ErrorOutput: utils.NewFlushingWriter(command.ErrOrStderr()),
	}
}

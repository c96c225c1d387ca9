package transcript

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	recordingArgumentIndexConstant        = 0
	recordingOpenErrorTemplateConstant    = "unable to open recording: %w"
	commandExecutionErrorTemplateConstant = "fixing %s failed: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current transcript configuration.
type ConfigurationProvider func() Configuration

// CommandRunner processes the recording named by the first positional
// argument and writes the result to the command's standard output.
type CommandRunner struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Run executes the transcript pipeline for a Cobra command invocation.
func (runner *CommandRunner) Run(command *cobra.Command, arguments []string) error {
	recordingPath := arguments[recordingArgumentIndexConstant]

	processor, processorError := NewProcessor(runner.resolveLogger(), runner.resolveConfiguration().Options())
	if processorError != nil {
		return processorError
	}

	recordingFile, openError := os.Open(recordingPath)
	if openError != nil {
		return fmt.Errorf(recordingOpenErrorTemplateConstant, openError)
	}
	defer recordingFile.Close()

	if _, processError := processor.Process(recordingFile, command.OutOrStdout()); processError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, recordingPath, processError)
	}

	return nil
}

func (runner *CommandRunner) resolveLogger() *zap.Logger {
	if runner.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := runner.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (runner *CommandRunner) resolveConfiguration() Configuration {
	if runner.ConfigurationProvider == nil {
		return DefaultConfiguration()
	}
	return runner.ConfigurationProvider()
}

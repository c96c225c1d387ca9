package recording

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	recordSubcommandConstant             = "rec"
	endOfTransmissionByteConstant        = 0x04
	confirmationLineTerminatorConstant   = '\n'
	optionPrefixConstant                 = "-"
	executableNotFoundMessageConstant    = "recorder executable not found"
	launcherMissingMessageConstant       = "recorder process launcher not configured"
	executableNotFoundTemplateConstant   = "%w: %s: %w"
	launchErrorTemplateConstant          = "couldn't start recording: %w"
	scriptExecutionErrorTemplateConstant = "script execution failed: %w"
	stopErrorTemplateConstant            = "couldn't stop recording: %w"
	processWaitErrorTemplateConstant     = "recorder exited with error: %w"
	recordingStartedMessageConstant      = "recording started"
	recordingStoppedMessageConstant      = "recording stopped"
	confirmationForwardedMessageConstant = "confirmation forwarded to recorder"
	interruptForwardedMessageConstant    = "interrupt forwarded to recorder"
	logFieldExecutableConstant           = "executable"
	logFieldArgumentsConstant            = "arguments"
	logFieldCommandCountConstant         = "command_count"
	logFieldAwaitingConfirmationConstant = "awaiting_confirmation"
)

// ErrExecutableNotFound indicates the recorder executable could not be located.
var ErrExecutableNotFound = errors.New(executableNotFoundMessageConstant)

// ErrLauncherNotConfigured indicates the Recorder has no ProcessLauncher.
var ErrLauncherNotConfigured = errors.New(launcherMissingMessageConstant)

// RecordingProcess is a running recorder.
type RecordingProcess interface {
	Input() io.Writer
	Signal(signal os.Signal) error
	Wait() error
}

// ProcessLauncher starts recorder processes.
type ProcessLauncher interface {
	Launch(executionContext context.Context, executablePath string, arguments []string) (RecordingProcess, error)
}

// ExecutableLocator resolves an executable name to a path.
type ExecutableLocator func(executableName string) (string, error)

// Dependencies enumerates the collaborators a Recorder needs.
type Dependencies struct {
	Launcher          ProcessLauncher
	Locator           ExecutableLocator
	Sleeper           Sleeper
	ConfirmationInput io.Reader
}

// Recorder runs scripts inside a recorder process.
type Recorder struct {
	logger            *zap.Logger
	configuration     Configuration
	launcher          ProcessLauncher
	locator           ExecutableLocator
	sleeper           Sleeper
	confirmationInput io.Reader
}

// NewRecorder constructs a Recorder. Missing optional dependencies fall back to
// exec.LookPath, ContextSleep, and standard input.
func NewRecorder(logger *zap.Logger, configuration Configuration, dependencies Dependencies) (*Recorder, error) {
	if dependencies.Launcher == nil {
		return nil, ErrLauncherNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	recorder := &Recorder{
		logger:            logger,
		configuration:     configuration.Sanitize(),
		launcher:          dependencies.Launcher,
		locator:           dependencies.Locator,
		sleeper:           dependencies.Sleeper,
		confirmationInput: dependencies.ConfirmationInput,
	}
	if recorder.locator == nil {
		recorder.locator = exec.LookPath
	}
	if recorder.sleeper == nil {
		recorder.sleeper = ContextSleep
	}
	if recorder.confirmationInput == nil {
		recorder.confirmationInput = os.Stdin
	}

	return recorder, nil
}

// Record launches "<executable> rec <arguments>", types the script into it, and
// ends the recording. When the recorder was not given an output file it asks the
// user what to do with the recording, so Record waits for Enter (forwarded to the
// recorder) or for the context to be cancelled (forwarded as an interrupt).
func (recorder *Recorder) Record(executionContext context.Context, script Script, arguments []string) error {
	executablePath, locateError := recorder.locator(recorder.configuration.Executable)
	if locateError != nil {
		return fmt.Errorf(executableNotFoundTemplateConstant, ErrExecutableNotFound, recorder.configuration.Executable, locateError)
	}

	recordArguments := append([]string{recordSubcommandConstant}, arguments...)
	process, launchError := recorder.launcher.Launch(executionContext, executablePath, recordArguments)
	if launchError != nil {
		return fmt.Errorf(launchErrorTemplateConstant, launchError)
	}

	recorder.logger.Info(
		recordingStartedMessageConstant,
		zap.String(logFieldExecutableConstant, executablePath),
		zap.Strings(logFieldArgumentsConstant, recordArguments),
		zap.Int(logFieldCommandCountConstant, len(script.Commands)),
	)

	session := NewSession(process.Input(), recorder.sleeper, recorder.configuration.Delay, recorder.configuration.Wait)
	var executionError error
	if sessionError := session.Execute(executionContext, script); sessionError != nil {
		executionError = fmt.Errorf(scriptExecutionErrorTemplateConstant, sessionError)
	}

	stopError := recorder.stop(executionContext, process, arguments)

	return errors.Join(executionError, stopError)
}

func (recorder *Recorder) stop(executionContext context.Context, process RecordingProcess, arguments []string) error {
	var stopError error
	if _, writeError := process.Input().Write([]byte{endOfTransmissionByteConstant}); writeError != nil {
		stopError = fmt.Errorf(stopErrorTemplateConstant, writeError)
	} else if awaitsConfirmation(arguments) {
		stopError = recorder.forwardConfirmation(executionContext, process)
	}

	recorder.logger.Info(
		recordingStoppedMessageConstant,
		zap.Bool(logFieldAwaitingConfirmationConstant, awaitsConfirmation(arguments)),
	)

	if waitError := process.Wait(); waitError != nil {
		return errors.Join(stopError, fmt.Errorf(processWaitErrorTemplateConstant, waitError))
	}
	return stopError
}

func (recorder *Recorder) forwardConfirmation(executionContext context.Context, process RecordingProcess) error {
	confirmed := make(chan struct{}, 1)
	go func() {
		_, _ = bufio.NewReader(recorder.confirmationInput).ReadString(confirmationLineTerminatorConstant)
		confirmed <- struct{}{}
	}()

	select {
	case <-executionContext.Done():
		recorder.logger.Info(interruptForwardedMessageConstant)
		if signalError := process.Signal(os.Interrupt); signalError != nil {
			return fmt.Errorf(stopErrorTemplateConstant, signalError)
		}
		return nil
	case <-confirmed:
		recorder.logger.Debug(confirmationForwardedMessageConstant)
		if _, writeError := process.Input().Write([]byte{confirmationLineTerminatorConstant}); writeError != nil {
			return fmt.Errorf(stopErrorTemplateConstant, writeError)
		}
		return nil
	}
}

// awaitsConfirmation reports whether the recorder will prompt before saving,
// which happens when no output file argument leads the argument list.
func awaitsConfirmation(arguments []string) bool {
	return len(arguments) == 0 || strings.HasPrefix(arguments[0], optionPrefixConstant)
}

// OSProcessLauncher starts recorder processes with os/exec and forwards their
// output to the configured writers.
type OSProcessLauncher struct {
	Output      io.Writer
	ErrorOutput io.Writer
}

// Launch starts the executable. The process is not bound to the context so an
// interrupt can be forwarded to it instead of killing it mid-recording.
func (launcher OSProcessLauncher) Launch(executionContext context.Context, executablePath string, arguments []string) (RecordingProcess, error) {
	command := exec.Command(executablePath, arguments...)
	command.Stdout = launcher.Output
	command.Stderr = launcher.ErrorOutput

	input, pipeError := command.StdinPipe()
	if pipeError != nil {
		return nil, pipeError
	}
	if startError := command.Start(); startError != nil {
		return nil, startError
	}

	return &osRecordingProcess{command: command, input: input}, nil
}

type osRecordingProcess struct {
	command *exec.Cmd
	input   io.WriteCloser
}

func (process *osRecordingProcess) Input() io.Writer {
	return process.input
}

func (process *osRecordingProcess) Signal(signal os.Signal) error {
	return process.command.Process.Signal(signal)
}

func (process *osRecordingProcess) Wait() error {
	return process.command.Wait()
}

package recording

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	controlPrefixConstant                 = "#$"
	delayControlNameConstant              = "delay"
	waitControlNameConstant               = "wait"
	shellInputTerminatorConstant          = "\n"
	scriptLineSeparatorConstant           = "\n"
	unknownControlMessageConstant         = "unknown control command"
	missingControlArgumentMessageConstant = "no arguments given to control command"
	invalidControlArgumentMessageConstant = "invalid control command argument"
	scriptLineErrorTemplateConstant       = "%w (line %d)"
	controlArgumentErrorTemplateConstant  = "%w: %q"
	scriptReadErrorTemplateConstant       = "failed to read script: %w"
)

// ErrUnknownControl indicates a control line named an unsupported control.
var ErrUnknownControl = errors.New(unknownControlMessageConstant)

// ErrMissingControlArgument indicates a control line omitted its argument.
var ErrMissingControlArgument = errors.New(missingControlArgumentMessageConstant)

// ErrInvalidControlArgument indicates a control argument was not a non-negative millisecond count.
var ErrInvalidControlArgument = errors.New(invalidControlArgumentMessageConstant)

// Command is a single script step applied to a Session.
type Command interface {
	Apply(executionContext context.Context, session *Session) error
}

// ShellInput is text typed into the recorded shell.
type ShellInput struct {
	Text string
}

// NewShellInput builds ShellInput, terminating the text with a newline when it lacks one.
func NewShellInput(text string) ShellInput {
	if !strings.HasSuffix(text, shellInputTerminatorConstant) {
		text += shellInputTerminatorConstant
	}
	return ShellInput{Text: text}
}

// Apply types the text into the session.
func (input ShellInput) Apply(executionContext context.Context, session *Session) error {
	return session.typeText(executionContext, input.Text)
}

// DelayControl changes the typing interval for subsequent shell input.
type DelayControl struct {
	Interval time.Duration
}

// Apply updates the session typing interval.
func (control DelayControl) Apply(executionContext context.Context, session *Session) error {
	session.delay = control.Interval
	return nil
}

// WaitControl changes the pause applied after each subsequent command.
type WaitControl struct {
	Duration time.Duration
}

// Apply updates the session pause.
func (control WaitControl) Apply(executionContext context.Context, session *Session) error {
	session.wait = control.Duration
	return nil
}

// Script is an ordered list of commands.
type Script struct {
	Commands []Command
}

// ParseScript reads a script. Lines starting with "#$" are controls; every
// other line is shell input. An empty final line is ignored.
func ParseScript(reader io.Reader) (Script, error) {
	content, readError := io.ReadAll(reader)
	if readError != nil {
		return Script{}, fmt.Errorf(scriptReadErrorTemplateConstant, readError)
	}

	lines := strings.Split(string(content), scriptLineSeparatorConstant)
	script := Script{Commands: make([]Command, 0, len(lines))}
	for lineIndex, line := range lines {
		if len(line) == 0 && lineIndex == len(lines)-1 {
			continue
		}

		if !strings.HasPrefix(line, controlPrefixConstant) {
			script.Commands = append(script.Commands, NewShellInput(line))
			continue
		}

		control, controlError := parseControl(strings.TrimPrefix(line, controlPrefixConstant))
		if controlError != nil {
			return Script{}, fmt.Errorf(scriptLineErrorTemplateConstant, controlError, lineIndex+1)
		}
		script.Commands = append(script.Commands, control)
	}

	return script, nil
}

func parseControl(controlText string) (Command, error) {
	tokens := strings.Fields(controlText)
	if len(tokens) == 0 {
		return nil, ErrUnknownControl
	}

	switch tokens[0] {
	case delayControlNameConstant:
		interval, durationError := parseMilliseconds(tokens[1:])
		if durationError != nil {
			return nil, durationError
		}
		return DelayControl{Interval: interval}, nil
	case waitControlNameConstant:
		duration, durationError := parseMilliseconds(tokens[1:])
		if durationError != nil {
			return nil, durationError
		}
		return WaitControl{Duration: duration}, nil
	default:
		return nil, fmt.Errorf(controlArgumentErrorTemplateConstant, ErrUnknownControl, tokens[0])
	}
}

func parseMilliseconds(arguments []string) (time.Duration, error) {
	if len(arguments) == 0 {
		return 0, ErrMissingControlArgument
	}

	milliseconds, parseError := strconv.ParseInt(arguments[0], 10, 64)
	if parseError != nil || milliseconds < 0 {
		return 0, fmt.Errorf(controlArgumentErrorTemplateConstant, ErrInvalidControlArgument, arguments[0])
	}

	return time.Duration(milliseconds) * time.Millisecond, nil
}

package recording

import (
	"context"
	"fmt"
	"io"
	"time"
)

const (
	typingErrorTemplateConstant = "failed to type into recorder: %w"
)

// Sleeper pauses for the given duration or until the context is done.
type Sleeper func(executionContext context.Context, duration time.Duration) error

// ContextSleep is the default Sleeper backed by a timer.
func ContextSleep(executionContext context.Context, duration time.Duration) error {
	if duration <= 0 {
		return executionContext.Err()
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-executionContext.Done():
		return executionContext.Err()
	case <-timer.C:
		return nil
	}
}

// Session types script commands into a recorder input.
type Session struct {
	input   io.Writer
	sleeper Sleeper
	delay   time.Duration
	wait    time.Duration
}

// NewSession constructs a Session with initial typing interval and pause.
func NewSession(input io.Writer, sleeper Sleeper, delay time.Duration, wait time.Duration) *Session {
	if sleeper == nil {
		sleeper = ContextSleep
	}
	return &Session{input: input, sleeper: sleeper, delay: delay, wait: wait}
}

// Delay reports the current typing interval.
func (session *Session) Delay() time.Duration {
	return session.delay
}

// Wait reports the current pause applied after each command.
func (session *Session) Wait() time.Duration {
	return session.wait
}

// Execute applies every command in order, pausing after each one.
func (session *Session) Execute(executionContext context.Context, script Script) error {
	for _, command := range script.Commands {
		if applyError := command.Apply(executionContext, session); applyError != nil {
			return applyError
		}
		if sleepError := session.sleeper(executionContext, session.wait); sleepError != nil {
			return sleepError
		}
	}
	return nil
}

func (session *Session) typeText(executionContext context.Context, text string) error {
	for _, character := range text {
		if _, writeError := io.WriteString(session.input, string(character)); writeError != nil {
			return fmt.Errorf(typingErrorTemplateConstant, writeError)
		}
		if sleepError := session.sleeper(executionContext, session.delay); sleepError != nil {
			return sleepError
		}
	}
	return nil
}

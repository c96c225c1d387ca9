// Package recording drives asciinema from a plain-text script so terminal
// sessions can be re-recorded on demand.
//
// ParseScript turns a script into shell input and timing controls, Session
// types that input into a running recorder one character at a time, and
// Recorder launches the recorder process, executes the script, and ends the
// recording. CommandBuilder exposes the workflow as the `record` Cobra command.
package recording

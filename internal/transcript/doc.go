// Package transcript rewrites recorded terminal sessions for documentation
// playback.
//
// A recording is read into memory as an ordered slice of raw lines, passed
// through the prompt recoloring scans and the package list collapser, and
// written back out without its trailing housekeeping records. Lines are treated
// as opaque text except where they match the prompt, line break, or package
// addition patterns.
package transcript

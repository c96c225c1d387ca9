// Package cli constructs the castfix command-line interface. The root command
// rewrites a recording for documentation playback and the record subcommand
// drives asciinema from a script. Configuration comes from an embedded default
// YAML document, an optional config file, and CASTFIX_ environment variables.
package cli

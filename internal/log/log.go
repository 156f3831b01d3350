// Package log builds the diagnostic logger used by the CLI.
//
// Diagnostics are separate from command output: command results go through
// the CLI output formatter, while this logger carries warnings and verbose
// traces on stderr where they cannot corrupt JSON output.
package log

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. Verbose mode lowers the level
// from warn to debug.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(writer).Level(level)
}

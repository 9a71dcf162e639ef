// Package logging configures the zerolog logger shared by the commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Level maps the quiet and verbose switches to a log level. Quiet wins.
func Level(quiet, verbose bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.WarnLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a console logger writing to w, tagged with the command name
// and a fresh run id.
func New(w io.Writer, command string, quiet, verbose bool) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).
		Level(Level(quiet, verbose)).
		With().
		Timestamp().
		Str("cmd", command).
		Str("run", uuid.NewString()).
		Logger()
}

// Setup installs a stderr console logger as the global logger and returns it.
func Setup(command string, quiet, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := New(os.Stderr, command, quiet, verbose)
	log.Logger = logger
	return logger
}

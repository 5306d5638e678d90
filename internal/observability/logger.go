package observability

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger shared by the CLI and the editor API.
// Verbose enables debug level; otherwise info and above are written.
func NewLogger(out io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

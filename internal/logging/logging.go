package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. format is "console" for human-readable
// output or "json".
func Setup(level, format string) error {
	return SetupWriter(os.Stdout, level, format)
}

// SetupWriter is Setup with an explicit destination. The CLI logs to stderr so stdout
// carries only command output.
func SetupWriter(out io.Writer, level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(out, format)
	// code logging through log.Ctx without a request logger falls back to the global one
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

func New(out io.Writer, format string) zerolog.Logger {
	if format != "json" {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = out
			w.TimeFormat = time.RFC3339
		})
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yukikurage/todo-api/internal/config"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
}

// New builds the application logger for the given env. Local runs get a
// human readable console writer; everything else logs JSON to stdout.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	w := out

	switch env {
	case config.EnvLocal:
		level = zerolog.TraceLevel
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		w = consoleWriter
	case config.EnvDev:
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

// Nop is used by tests that do not care about log output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

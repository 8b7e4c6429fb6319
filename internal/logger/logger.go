// Package logger builds the zerolog loggers used by the server and the
// terminal client.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kidandcat/projectview/internal/config"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
}

// New returns a logger writing to out with a level chosen by env. The local
// environment logs everything through a console writer; dev logs debug and
// above; prod logs info and above as JSON.
func New(env string, out io.Writer) (zerolog.Logger, error) {
	level, err := Level(env)
	if err != nil {
		return zerolog.Nop(), err
	}

	w := out
	if env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = out
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

func Level(env string) (zerolog.Level, error) {
	switch env {
	case config.EnvLocal:
		return zerolog.TraceLevel, nil
	case config.EnvDev:
		return zerolog.DebugLevel, nil
	case config.EnvProd:
		return zerolog.InfoLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown env: %s", env)
}

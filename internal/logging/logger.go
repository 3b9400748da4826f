package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/clinicops/clinic-scheduler/internal/config"
)

// New builds the process logger. Development gets a console writer.
func New(cfg *config.Config) zerolog.Logger {
	var out io.Writer = os.Stdout
	if !cfg.IsProduction() {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "clinic-scheduler").
		Logger()
}

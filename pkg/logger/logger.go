package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output is where log lines go. Stdout is reserved for command output.
var Output io.Writer = os.Stderr

// Init initializes the global logger with the specified level and format
func Init(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(Output).With().Timestamp().Logger()
		return
	}

	// Console format (default for an interactive tool)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: Output, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()
}

// Get returns a reference to the global logger
func Get() *zerolog.Logger {
	return &log.Logger
}

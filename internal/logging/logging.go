// Package logging sets up the zerolog logger shared by the panner and the
// gain service.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds a console logger writing to out at the given level.
// Timestamps are UTC RFC3339.
func Setup(level string, out io.Writer, noColor bool) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	w := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	logger.Debug().Str("loglevel", logger.GetLevel().String()).Msg("Logging set up")
	return logger
}

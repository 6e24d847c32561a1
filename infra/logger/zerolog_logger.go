package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologLogger adapts rs/zerolog to the core Logger interface.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger builds the process logger for one component. APP_ENV=dev
// selects a human-readable console writer, anything else structured JSON on
// stdout. PW_LOG_LEVEL (debug, info, warn, error) caps verbosity; unset or
// unrecognized values let everything through.
func NewZerologLogger(component string) Logger {
	var base zerolog.Logger
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		base = zerolog.New(os.Stdout)
	}
	z := base.Level(parseLevel(os.Getenv("PW_LOG_LEVEL"))).
		With().Timestamp().Str("component", component).Logger()
	return &zerologLogger{log: z}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.TraceLevel
	}
}

func (l *zerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

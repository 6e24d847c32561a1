package logger

import corelogger "github.com/DanielEliad/powerworld/core/logger"

// Logger re-exports the core logging interface so wiring code needs a single
// import.
type Logger = corelogger.Logger

// NopLogger discards everything. It is the default for optional dependencies
// and keeps test output quiet.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the logger for one component, formatted per APP_ENV and
// filtered per PW_LOG_LEVEL.
func New(component string) Logger {
	return NewZerologLogger(component)
}

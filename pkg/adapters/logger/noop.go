package logger

import "github.com/user/bytereel/pkg/ports"

// Discard drops every message. It is safe to share between goroutines.
var Discard ports.Logger = NoopLogger{}

// NoopLogger is a ports.Logger that writes nothing.
type NoopLogger struct{}

// NewNoop returns a NoopLogger.
func NewNoop() NoopLogger {
	return NoopLogger{}
}

func (NoopLogger) Debug(string, ...interface{}) {}
func (NoopLogger) Info(string, ...interface{})  {}
func (NoopLogger) Warn(string, ...interface{})  {}
func (NoopLogger) Error(string, ...interface{}) {}

func (l NoopLogger) WithComponent(string) ports.Logger {
	return l
}

// New picks the CLI logger: Discard for --quiet or the quiet level,
// otherwise a console logger filtering below level.
func New(level ports.LogLevel, quiet bool) ports.Logger {
	if quiet || level == ports.LevelQuiet {
		return Discard
	}
	return NewConsole(level)
}

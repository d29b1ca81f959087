// Package ports defines interfaces for external dependencies.
package ports

import (
	"fmt"
	"strings"
)

// LogLevel orders log messages by severity. LevelQuiet is above every
// real severity and silences the logger.
type LogLevel int

const (
	LevelDebug LogLevel = iota // per-frame and per-stage detail
	LevelInfo                  // job progress
	LevelWarn                  // recoverable, e.g. surplus frames
	LevelError                 // the job failed
	LevelQuiet
)

var levelNames = []string{"debug", "info", "warn", "error", "quiet"}

// String returns the configuration name of the level.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// LogLevelNames lists the accepted level names from most to least verbose.
func LogLevelNames() []string {
	return append([]string(nil), levelNames...)
}

// ParseLogLevel parses a level name. Matching ignores case, and "warning"
// is accepted for "warn".
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q (want one of %s)", s, strings.Join(levelNames, ", "))
}

// Logger is the logging port used by every stage and adapter.
// msg is a format key that implementations may translate before
// applying args.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger whose messages carry the component name.
	WithComponent(component string) Logger
}

// Package logger provides logging implementations.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/user/bytereel/pkg/ports"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger writes translated messages to stdout, and warnings and errors to stderr.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool
	out       io.Writer
	errOut    io.Writer
	mu        *sync.Mutex
}

// NewConsole creates a console logger writing to os.Stdout and os.Stderr.
// Color output is enabled when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	l := NewWriter(level, os.Stdout, os.Stderr)
	l.color = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return l
}

// NewWriter creates a console logger over arbitrary writers without color.
func NewWriter(level ports.LogLevel, out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level:  level,
		out:    out,
		errOut: errOut,
		mu:     &sync.Mutex{},
	}
}

// Level returns the minimum level that is written.
func (l *ConsoleLogger) Level() ports.LogLevel {
	return l.level
}

// Debug logs a debug message.
func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.log(ports.LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.log(ports.LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.log(ports.LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.log(ports.LevelError, msg, args...)
}

// WithComponent returns a logger that prefixes messages with the component name.
// Nested components are joined with a slash.
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	c := *l
	if l.component != "" {
		c.component = l.component + "/" + component
	} else {
		c.component = component
	}
	return &c
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	if level < l.level || l.level == ports.LevelQuiet {
		return
	}

	line := l10n.F(msg, args...)
	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}

	if l.color {
		switch level {
		case ports.LevelDebug:
			line = colorGray + line + colorReset
		case ports.LevelWarn:
			line = colorYellow + line + colorReset
		case ports.LevelError:
			line = colorRed + line + colorReset
		}
	}

	w := l.out
	if level >= ports.LevelWarn {
		w = l.errOut
	}

	// Workers log concurrently; keep lines whole.
	l.mu.Lock()
	fmt.Fprintln(w, line)
	l.mu.Unlock()
}

var _ ports.Logger = (*ConsoleLogger)(nil)

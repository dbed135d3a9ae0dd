// Package logging provides a leveled logger backed by charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout used for every log line.
const TimeFormat = "15:04:05.000"

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.FatalLevel + 1
	}
}

// ParseLevel parses a log level string. Unknown strings give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger. The zero value is not usable; use New.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	inner  *log.Logger
}

// New creates a logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{level: level, output: os.Stderr}
	l.rebuild()
	return l
}

func (l *Logger) rebuild() {
	l.inner = log.NewWithOptions(l.output, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           l.level.charm(),
	})
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.inner.SetLevel(level.charm())
}

// With returns a logger that adds the key/value pairs to every line.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &Logger{level: l.level, output: l.output, inner: l.inner.With(keyvals...)}
}

func (l *Logger) get() *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.get().Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.get().Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.get().Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.get().Errorf(format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(LevelError + 1).withOutput(io.Discard)
}

func (l *Logger) withOutput(w io.Writer) *Logger {
	l.SetOutput(w)
	return l
}

// Package logging provides a small leveled logger with named components
// and key=value context fields.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a log level string, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// sink is the destination shared by a logger and all its children, so a
// SetOutput on the root redirects the whole tree.
type sink struct {
	mu    sync.Mutex
	level Level
	w     io.Writer
}

// Logger emits timestamped, leveled lines. Loggers are cheap values;
// derive per-component ones with Named and per-call context with With.
type Logger struct {
	s      *sink
	name   string
	fields string
}

// New creates a root logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{s: &sink{level: level, w: os.Stderr}}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{s: &sink{level: LevelError + 1, w: io.Discard}}
}

// Named returns a child logger whose lines carry a component name.
func (l *Logger) Named(name string) *Logger {
	child := *l
	if child.name != "" {
		name = child.name + "." + name
	}
	child.name = name
	return &child
}

// With returns a child logger carrying extra key=value context appended
// to every line. Arguments are consumed in pairs.
func (l *Logger) With(kv ...interface{}) *Logger {
	child := *l
	var b strings.Builder
	b.WriteString(child.fields)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	child.fields = b.String()
	return &child
}

// SetOutput redirects the logger and all loggers derived from it.
func (l *Logger) SetOutput(w io.Writer) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.w = w
}

// SetLevel sets the minimum level for the logger and all loggers
// derived from it.
func (l *Logger) SetLevel(level Level) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.level = level
}

// Timed logs the elapsed time of an operation at debug level when the
// returned function runs. Meant for defer.
func (l *Logger) Timed(op string) func() {
	start := time.Now()
	return func() {
		l.Debug("%s took %v", op, time.Since(start).Round(time.Millisecond))
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	if level < l.s.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("]")
	if l.name != "" {
		b.WriteString(" ")
		b.WriteString(l.name)
		b.WriteString(":")
	}
	b.WriteString(" ")
	fmt.Fprintf(&b, format, args...)
	b.WriteString(l.fields)
	b.WriteString("\n")

	_, _ = l.s.w.Write([]byte(b.String()))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

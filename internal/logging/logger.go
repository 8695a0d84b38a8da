// Package logging is a small leveled text logger used for run progress.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Log level constants
const (
	LevelTrace = 0
	LevelDebug = 1
	LevelInfo  = 2
	LevelWarn  = 3
	LevelError = 4
)

// DefaultTimestampFormat is used for the leading timestamp of each line.
const DefaultTimestampFormat = "2006-01-02 15:04:05.000"

// Logger writes "[time] [LEVEL] message key=value ..." lines.
type Logger struct {
	mu              sync.Mutex
	out             io.Writer
	level           int
	timestampFormat string
	now             func() time.Time
}

// New creates a logger writing to out at the given minimum level.
func New(out io.Writer, level int) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		out:             out,
		level:           level,
		timestampFormat: DefaultTimestampFormat,
		now:             time.Now,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *Logger) GetLevel() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) Tracef(format string, args ...interface{}) { l.logf(LevelTrace, format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

func (l *Logger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log(LevelDebug, msg, fields)
}

func (l *Logger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log(LevelInfo, msg, fields)
}

func (l *Logger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log(LevelWarn, msg, fields)
}

func (l *Logger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log(LevelError, msg, fields)
}

func (l *Logger) logf(level int, format string, args ...interface{}) {
	if l.GetLevel() > level {
		return
	}
	l.log(level, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) log(level int, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level > level {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.now().Format(l.timestampFormat))
	b.WriteString("] [")
	b.WriteString(LevelName(level))
	b.WriteString("] ")
	b.WriteString(strings.TrimSuffix(msg, "\n"))
	if len(fields) > 0 {
		b.WriteString(" ")
		b.WriteString(FormatFields(fields))
	}
	b.WriteString("\n")

	_, _ = io.WriteString(l.out, b.String())
}

// FormatFields formats fields as key=value pairs sorted by key.
func FormatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := fmt.Sprintf("%v", fields[k])
		if strings.ContainsAny(v, " \t\"") {
			v = fmt.Sprintf("%q", v)
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}

// LevelName returns the upper-case name of a level.
func LevelName(level int) string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "LOG"
	}
}

// ParseLevel converts a level name in any case to its constant.
// Empty or unrecognized names yield LevelInfo.
func ParseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
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

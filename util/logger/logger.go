package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log line. Lines below the logger's
// configured level are dropped.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the level's tag as it appears in log output.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	}
	return "UNKNOWN"
}

// ParseLevel converts a configuration string such as "debug" or "WARN"
// into a Level. An empty string means InfoLevel; anything unrecognized
// returns an error so a typo in a config file fails loudly at startup.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel, nil
	case "", "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "FATAL":
		return FatalLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// Logger writes leveled, component-prefixed log lines. Each long-lived
// component owns one Logger; the prefix identifies the component in
// interleaved output.
type Logger struct {
	mu     sync.Mutex
	level  Level
	prefix string
	out    *log.Logger
}

// NewLogger returns a Logger for the given component prefix, writing to
// stdout at InfoLevel.
func NewLogger(prefix string) *Logger {
	return &Logger{
		level:  InfoLevel,
		prefix: prefix,
		out:    log.New(os.Stdout, "", 0),
	}
}

// SetLevel changes the minimum level that will be written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput redirects log output, primarily for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = log.New(w, "", 0)
}

func (l *Logger) write(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	threshold := l.level
	out := l.out
	l.mu.Unlock()

	if level < threshold {
		return
	}

	stamp := time.Now().Format("2006-01-02 15:04:05")
	out.Printf("[%s] [%s] [%s] %s", stamp, level, l.prefix, fmt.Sprintf(format, args...))

	if level == FatalLevel {
		os.Exit(1)
	}
}

// Debugf logs at DebugLevel.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(DebugLevel, format, args...)
}

// Infof logs at InfoLevel.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(InfoLevel, format, args...)
}

// Warnf logs at WarnLevel.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(WarnLevel, format, args...)
}

// Errorf logs at ErrorLevel.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(ErrorLevel, format, args...)
}

// Fatalf logs at FatalLevel and exits the process.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.write(FatalLevel, format, args...)
}

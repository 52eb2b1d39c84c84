// Package logger provides a simple logging interface for tegratop components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
//
// The dashboard owns the terminal while it runs, so the production logger
// writes to a file rather than stderr.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DebugEnv enables debug output for loggers that don't have it set explicitly.
const DebugEnv = "TEGRATOP_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger implements Logger and logs through the standard log package.
// Debug messages are only printed when TEGRATOP_DEBUG is set.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects the TEGRATOP_DEBUG environment variable.
// The prefix is prepended to all log messages (e.g., "[cpu]" or "[disk]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if os.Getenv(DebugEnv) != "" {
		log.Printf(l.prefix+" "+format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	log.Printf(l.prefix+" "+format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	log.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	log.Printf(l.prefix+" ERROR: "+format, args...)
}

// FileLogger writes timestamped, leveled lines to a log file.
type FileLogger struct {
	mu    sync.Mutex
	out   *log.Logger
	file  io.Closer
	debug bool
}

// NewFileLogger opens (truncating) the log file at path. Debug lines are
// written when debug is true or TEGRATOP_DEBUG is set.
func NewFileLogger(path string, debug bool) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return newWriterLogger(f, f, debug), nil
}

// NewWriterLogger creates a FileLogger on an arbitrary writer.
func NewWriterLogger(w io.Writer, debug bool) *FileLogger {
	return newWriterLogger(w, nil, debug)
}

func newWriterLogger(w io.Writer, c io.Closer, debug bool) *FileLogger {
	return &FileLogger{
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		file:  c,
		debug: debug || os.Getenv(DebugEnv) != "",
	}
}

func (l *FileLogger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf(level+" "+format, args...)
}

func (l *FileLogger) Debug(format string, args ...interface{}) {
	if l.debug {
		l.write("DEBUG", format, args...)
	}
}

func (l *FileLogger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.write("WARN", format, args...)
}

func (l *FileLogger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

// Close closes the underlying file, if any.
func (l *FileLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// prefixLogger prepends a fixed tag to every message of a parent logger.
type prefixLogger struct {
	prefix string
	parent Logger
}

// WithPrefix returns a Logger that tags every message with prefix, e.g. "[gpu]".
func WithPrefix(parent Logger, prefix string) Logger {
	if parent == nil {
		parent = Noop()
	}
	return &prefixLogger{prefix: prefix, parent: parent}
}

func (l *prefixLogger) Debug(format string, args ...interface{}) {
	l.parent.Debug(l.prefix+" "+format, args...)
}

func (l *prefixLogger) Info(format string, args ...interface{}) {
	l.parent.Info(l.prefix+" "+format, args...)
}

func (l *prefixLogger) Warn(format string, args ...interface{}) {
	l.parent.Warn(l.prefix+" "+format, args...)
}

func (l *prefixLogger) Error(format string, args ...interface{}) {
	l.parent.Error(l.prefix+" "+format, args...)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains returns true if any message at the given level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	for _, m := range l.Messages {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger.
var defaultLogger = NewEnvLogger("")

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}

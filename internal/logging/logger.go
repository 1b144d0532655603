// Package logging provides structured file logging for docview.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/docview/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...any)
	// Info logs an informational message.
	Info(msg string, args ...any)
	// Warn logs a warning message.
	Warn(msg string, args ...any)
	// Error logs an error message.
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes any buffered logs and releases resources.
	Shutdown() error
}

// loggerImpl is the charmbracelet/log based implementation.
type loggerImpl struct {
	mu       sync.RWMutex
	clogger  *clog.Logger
	file     *os.File
	redactor *redactor
	fields   []any // base key-value pairs added via With, in insertion order
	path     string
}

// Init initializes a new file Logger with the given configuration.
// If cfg.Enabled is false, returns a no-op logger.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	logDir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	fname := fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
	path := filepath.Join(logDir, fname)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := newLogger(f, cfg.Level).With("pid", cfg.PID, "command", cfg.Command).(*loggerImpl)
	l.file = f
	l.path = path
	return l, nil
}

// New returns a JSON Logger writing to w. The caller owns w.
func New(w io.Writer, level string) Logger {
	return newLogger(w, level)
}

func newLogger(w io.Writer, level string) *loggerImpl {
	clogger := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	return &loggerImpl{
		clogger:  clogger,
		redactor: newRedactor(),
	}
}

// parseLevel converts a string level to clog.Level.
func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *loggerImpl) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *loggerImpl) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *loggerImpl) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *loggerImpl) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

// log writes a log entry with redaction applied to the key-value pairs.
func (l *loggerImpl) log(level clog.Level, msg string, args []any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	allArgs := make([]any, 0, len(l.fields)+len(args))
	allArgs = append(allArgs, l.fields...)
	allArgs = append(allArgs, args...)
	l.clogger.Log(level, msg, l.redactor.redact(allArgs)...)
}

func (l *loggerImpl) With(args ...any) Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fields := make([]any, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	for i := 0; i+1 < len(args); i += 2 {
		if _, ok := args[i].(string); ok {
			fields = append(fields, args[i], args[i+1])
		}
	}
	return &loggerImpl{
		clogger:  l.clogger,
		file:     l.file,
		redactor: l.redactor,
		fields:   fields,
		path:     l.path,
	}
}

func (l *loggerImpl) Shutdown() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// filePath returns the full path to the log file.
func (l *loggerImpl) filePath() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// noopLogger is a logger that discards all output.
type noopLogger struct{}

func (n noopLogger) Debug(msg string, args ...any) {}
func (n noopLogger) Info(msg string, args ...any)  {}
func (n noopLogger) Warn(msg string, args ...any)  {}
func (n noopLogger) Error(msg string, args ...any) {}
func (n noopLogger) With(args ...any) Logger       { return n }
func (n noopLogger) Shutdown() error               { return nil }

// Nop returns a logger that discards everything.
func Nop() Logger {
	return noopLogger{}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}

var (
	globalLogger     Logger
	globalLoggerOnce sync.Once
	globalLoggerMu   sync.RWMutex
)

// InitGlobal initializes the global logger using configuration from the global config.
// It is safe to call multiple times; only the first call initializes the logger.
func InitGlobal() error {
	var err error
	globalLoggerOnce.Do(func() {
		var l Logger
		l, err = Init(FromGlobalConfig())
		globalLoggerMu.Lock()
		globalLogger = l
		globalLoggerMu.Unlock()
	})
	if err == nil && GetGlobal() != nil {
		colors.SetLogger(GetGlobal())
		if path := CurrentLogFile(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	}
	return err
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if globalLogger == nil {
		return noopLogger{}
	}
	return globalLogger
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) {
	GetGlobal().Debug(msg, args...)
}

// Info logs an info message using the global logger.
func Info(msg string, args ...any) {
	GetGlobal().Info(msg, args...)
}

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) {
	GetGlobal().Warn(msg, args...)
}

// Error logs an error message using the global logger.
func Error(msg string, args ...any) {
	GetGlobal().Error(msg, args...)
}

// With returns a new global logger with additional key-value pairs.
func With(args ...any) Logger {
	return GetGlobal().With(args...)
}

// ShutdownGlobal shuts down the global logger.
func ShutdownGlobal() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger != nil {
		return globalLogger.Shutdown()
	}
	return nil
}

// CurrentLogFile returns the path of the active log file, or "" when logging to no file.
func CurrentLogFile() string {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	if impl, ok := globalLogger.(*loggerImpl); ok {
		return impl.filePath()
	}
	return ""
}

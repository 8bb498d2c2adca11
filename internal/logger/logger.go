// Package logger is the diagnostic channel for banter. Everything goes to a
// file through a slog text handler so nothing is ever written over the TUI.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is the log file used when Init is never called.
const DefaultLogPath = "/tmp/banter-debug.log"

var (
	mu       sync.Mutex
	base     *slog.Logger
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	logPath  string
)

// SetDebug switches between debug and info level output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes all logging there.
// Calling Init again after a successful Init is a no-op until Reset.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

func initLocked(path string) error {
	if base != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("Logger initialized", "path", path)
	return nil
}

// get returns the process logger, opening DefaultLogPath on first use.
// Falls back to a discarding logger if the file cannot be opened.
func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if base == nil {
		if err := initLocked(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			base = Discard()
		}
	}
	return base
}

func logf(level slog.Level, format string, args ...interface{}) {
	l := get()
	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message (only emitted when SetDebug(true))
func Debug(format string, args ...interface{}) { logf(slog.LevelDebug, format, args...) }

// Info writes an info message
func Info(format string, args ...interface{}) { logf(slog.LevelInfo, format, args...) }

// Warn writes a warning message
func Warn(format string, args ...interface{}) { logf(slog.LevelWarn, format, args...) }

// Error writes an error message
func Error(format string, args ...interface{}) { logf(slog.LevelError, format, args...) }

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.ComponentLogger("completion")
//	log.Info("client created", "provider", p.Name, "model", p.Model)
func ComponentLogger(component string) *slog.Logger {
	return get().With(slog.String("component", component))
}

// WithSession returns a component logger that also carries the chat session id.
func WithSession(component, sessionID string) *slog.Logger {
	return ComponentLogger(component).With(slog.String("sessionID", sessionID))
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Path returns the file currently being written, or "" before first use.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = nil
}

// Reset closes the current file and forgets all state so Init can be called
// again. This is primarily for testing purposes.
func Reset() {
	Close()
	mu.Lock()
	defer mu.Unlock()
	logPath = ""
	levelVar = new(slog.LevelVar)
}

// ClearLogs removes the default log file. Returns the number of files removed.
func ClearLogs() (int, error) {
	if err := os.Remove(DefaultLogPath); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

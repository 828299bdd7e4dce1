// Package logger writes structured debug logs to a file so they never
// interfere with the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar) // Allows dynamic level changes
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	logPath    string
)

// DefaultLogPath is the default log file for the main process
const DefaultLogPath = "/tmp/chatpane-debug.log"

// logGlob matches every log file chatpane may have written
const logGlob = "/tmp/chatpane-*.log"

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// IsDebug reports whether debug logging is enabled
func IsDebug() bool {
	return levelVar.Level() <= slog.LevelDebug
}

// Init initializes the logger with a custom path.
// If not called, the default path is used on first use.
// Returns an error if the log file cannot be opened.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func ensureInitLocked() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		// Print to stderr since we can't log
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		slogLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		initDone = true
	}
}

// WithComponent returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.WithComponent("api")
//	log.Info("chats loaded", "page", page, "count", n)
func WithComponent(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	return slogLogger.With(slog.String("component", component))
}

// Logger returns the underlying slog.Logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInitLocked()
	return slogLogger
}

// Path returns the path of the active log file, or "" before initialization.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = ""
	slogLogger = nil
	levelVar.Set(slog.LevelInfo)
}

// ClearLogs removes all chatpane log files from /tmp
func ClearLogs() (int, error) {
	logs, err := filepath.Glob(logGlob)
	if err != nil {
		return 0, err
	}
	return removeAll(logs)
}

func removeAll(paths []string) (int, error) {
	count := 0
	for _, p := range paths {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}

// Package logging provides structured logging for the hydrate CLI.
// Callers log through log/slog; human-readable output is rendered by
// charmbracelet/log and an optional rotating file sink is provided by
// lumberjack.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix is printed in front of every human-readable log line.
const Prefix = "hydrate"

var (
	// defaultLogger is the package-level logger instance.
	defaultLogger *slog.Logger
	fileWriter    *lumberjack.Logger
	loggerMu      sync.RWMutex

	// Debug indicates if debug mode is enabled.
	Debug bool
)

func init() {
	defaultLogger = slog.New(newCharmHandler(os.Stderr, slog.LevelWarn, false))
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level // Minimum log level
	JSON      bool       // Use JSON output format
	Output    io.Writer  // Output destination (default: stderr)
	AddSource bool       // Include source file and line number
	File      string     // Also write to this rotating log file when set
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Output: os.Stderr,
	}
}

// DebugConfig returns a configuration suitable for debug mode.
func DebugConfig() Config {
	return Config{
		Level:     slog.LevelDebug,
		Output:    os.Stderr,
		AddSource: true,
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if fileWriter != nil {
		fileWriter.Close()
		fileWriter = nil
	}
	if cfg.File != "" {
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		output = io.MultiWriter(output, fileWriter)
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	} else {
		handler = newCharmHandler(output, cfg.Level, cfg.AddSource)
	}

	defaultLogger = slog.New(handler)
	Debug = cfg.Level <= slog.LevelDebug
}

// InitDebug initializes the logger in debug mode.
func InitDebug() {
	Init(DebugConfig())
}

// Close flushes and closes the log file, if one is open.
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func newCharmHandler(w io.Writer, level slog.Level, caller bool) slog.Handler {
	return log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		ReportCaller:    caller,
		Prefix:          Prefix,
	})
}

// Logger returns the current logger instance.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// DebugLog logs at DEBUG level.
func DebugLog(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// InfoContext logs at INFO level with context.
func InfoContext(ctx context.Context, msg string, args ...any) {
	Logger().InfoContext(ctx, msg, args...)
}

// ErrorContext logs at ERROR level with context.
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Logger().ErrorContext(ctx, msg, args...)
}

// Common structured logging fields.
const (
	KeySession   = "session"
	KeyOperation = "op"
	KeyError     = "error"
	KeyState     = "state"
	KeyStore     = "store"
	KeyInterval  = "interval"
	KeyResponse  = "response"
	KeyBaseline  = "baseline"
	KeyCount     = "count"
)

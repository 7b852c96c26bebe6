// Package logging holds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Format is json or console.
	Format string
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	Init(Config{})
}

// Init configures the global logger. Safe to call more than once.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	out := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	mu.Lock()
	log = zerolog.New(out).With().Timestamp().Logger()
	mu.Unlock()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger, mostly for tests.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

// With starts a child logger with extra fields.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal logs at fatal level; zerolog exits the process after Msg.
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}

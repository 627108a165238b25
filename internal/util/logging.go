// Package util provides common utilities including logging helpers,
// file system paths, and small value helpers.
package util

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu  sync.RWMutex
	logger = zerolog.Nop()
)

// Logger returns the process-wide logger. It discards everything until
// SetupLogging is called.
func Logger() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}

// SetLogger replaces the process-wide logger.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// SetupLogging points the process-wide logger at w with the named level.
// Unknown levels fall back to info.
func SetupLogging(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	SetLogger(l)
	return l
}

// OpenLogFile opens (appending) the log file at path, creating parent dirs.
func OpenLogFile(path string) (*os.File, error) {
	if err := EnsureParentDir(path); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// LogError logs an error with context if it is non-nil.
func LogError(context string, err error) {
	if err != nil {
		Logger().Error().Err(err).Msg(context)
	}
}

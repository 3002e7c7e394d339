// Package logger implements the agent's logging adapter using log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/bob-agent/internal/core/domain"
	"go.trai.ch/bob-agent/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger with a slog text handler.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
	level  *slog.LevelVar
	attrs  []any
}

// New creates a Logger writing to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr, domain.LogLevelInfo)
}

// NewWithWriter creates a Logger writing to w at the given level.
func NewWithWriter(w io.Writer, level domain.LogLevel) *Logger {
	l := &Logger{level: new(slog.LevelVar)}
	l.level.Set(level.Slog())
	l.logger = l.build(w)
	return l
}

func (l *Logger) build(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: l.level})
	return slog.New(handler).With(l.attrs...)
}

// SetOutput redirects the log output. Safe for concurrent use with the log methods.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.build(w)
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(level.Slog())
}

// WithJob returns a Logger that tags every record with the job identifier.
// It shares the level of l.
func (l *Logger) WithJob(id domain.JobIdentifier) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{
		logger: l.logger.With("job", id.String()),
		level:  l.level,
		attrs:  append(append([]any(nil), l.attrs...), "job", id.String()),
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "error", err)
}

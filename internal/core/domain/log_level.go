package domain

import (
	"log/slog"

	"go.trai.ch/zerr"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = LogLevel(slog.LevelDebug)
	LogLevelInfo  LogLevel = LogLevel(slog.LevelInfo)
	LogLevelWarn  LogLevel = LogLevel(slog.LevelWarn)
	LogLevelError LogLevel = LogLevel(slog.LevelError)
)

// Slog converts the level for use with log/slog.
func (l LogLevel) Slog() slog.Level {
	return slog.Level(l)
}

// String returns the upper case level name; unknown levels render as INFO.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return l.Slog().String()
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a level name such as "debug" or "WARN" into a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return LogLevelInfo, zerr.With(zerr.Wrap(ErrInvalidLogLevel, err.Error()), "level", s)
	}
	return LogLevel(level), nil
}

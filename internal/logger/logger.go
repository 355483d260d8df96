package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps the filter quiet unless something goes wrong.
const DefaultLevel = zapcore.WarnLevel

// New builds a console logger writing to w. Standard output carries the
// program's result, so callers pass stderr here.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "severity",
		TimeKey:        "time",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// ParseLevel parses a LOG_LEVEL value, falling back to DefaultLevel when the
// value is empty or invalid.
func ParseLevel(s string) (zapcore.Level, bool) {
	if s == "" {
		return DefaultLevel, true
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel, false
	}
	return level, true
}

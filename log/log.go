package log

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// ParseLevel parses a level name into a LogLevel.
// Valid levels are: debug, info, warn, error.
func ParseLevel(level string) (LogLevel, error) {
	switch l := LogLevel(level); l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return l, nil
	default:
		return LogInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogDebug:
		return zap.DebugLevel
	case LogWarn:
		return zap.WarnLevel
	case LogError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New builds a zap.Logger for the given level.
// format "console" selects the development encoder, anything else produces JSON.
func New(level LogLevel, format string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level.zapLevel())
	return cfg.Build()
}

type ctxKey struct{}

// WithLogger returns a context carrying logger.
// The returned teardown flushes the logger and should be deferred by the owner.
func WithLogger(ctx context.Context, logger *zap.Logger) (context.Context, func()) {
	return context.WithValue(ctx, ctxKey{}, logger), func() {
		// stdout/stderr syncs fail with EINVAL on some platforms; nothing to do about it
		_ = logger.Sync()
	}
}

// FromContext returns the logger stored by WithLogger, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// Eff emits a structured log line through the logger carried by ctx.
func Eff(ctx context.Context, level LogLevel, msg string, fields map[string]interface{}) {
	logger := FromContext(ctx)
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}

	switch level {
	case LogInfo:
		logger.Info(msg, zf...)
	case LogWarn:
		logger.Warn(msg, zf...)
	case LogError:
		logger.Error(msg, zf...)
	case LogDebug:
		logger.Debug(msg, zf...)
	default:
		logger.Info(msg, zf...)
	}
}

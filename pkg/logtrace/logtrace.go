package logtrace

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

// correlationIDKey carries the request correlation ID through contexts.
const correlationIDKey ctxKey = iota

var (
	mu     sync.RWMutex
	logger *zap.Logger = zap.NewNop()
)

// Setup initializes the process-wide logger. service and version are
// attached to every record.
func Setup(service, version string, level slog.Level) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zapLevel(level),
	)

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core).With(
		zap.String("service", service),
		zap.String("version", version),
	)
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level <= slog.LevelDebug:
		return zapcore.DebugLevel
	case level <= slog.LevelInfo:
		return zapcore.InfoLevel
	case level <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// CtxWithCorrelationID returns a context tagged with a fresh correlation ID
// derived from the given prefix.
func CtxWithCorrelationID(ctx context.Context, prefix string) context.Context {
	return context.WithValue(ctx, correlationIDKey, prefix+"-"+uuid.NewString()[:8])
}

func extractCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if cid, ok := ctx.Value(correlationIDKey).(string); ok && cid != "" {
		return cid
	}
	return "unknown"
}

func log(ctx context.Context, level zapcore.Level, msg string, fields Fields) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	zfields := make([]zap.Field, 0, len(fields)+1)
	if cid := extractCorrelationID(ctx); cid != "unknown" {
		zfields = append(zfields, zap.String(FieldCorrelationID, cid))
	}
	for key, value := range fields {
		zfields = append(zfields, zap.Any(key, value))
	}

	if ce := l.Check(level, msg); ce != nil {
		ce.Write(zfields...)
	}
}

// Debug logs a debug-level record with structured fields.
func Debug(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.DebugLevel, msg, fields)
}

// Info logs an info-level record with structured fields.
func Info(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.InfoLevel, msg, fields)
}

// Warn logs a warn-level record with structured fields.
func Warn(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.WarnLevel, msg, fields)
}

// Error logs an error-level record with structured fields.
func Error(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.ErrorLevel, msg, fields)
}

// Fatal logs the record and exits the process with a non-zero status.
func Fatal(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.FatalLevel, msg, fields)
	os.Exit(1)
}

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const traceIDKey ctxKey = "traceID"

// InitLogger installs the default slog logger writing to stdout
func InitLogger(cfg Config) {
	InitLoggerWithWriter(cfg, os.Stdout)
}

// InitLoggerWithWriter installs the default slog logger writing to w
func InitLoggerWithWriter(cfg Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     cfg.LogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler.WithAttrs(cfg.BaseAttributes())))
}

// GenerateTraceID creates a new UUID for tracing a tick or interaction.
func GenerateTraceID() string {
	return uuid.NewString()
}

// WithTraceID returns a new context containing the trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// NewTrace returns a context carrying a freshly generated trace ID.
func NewTrace(ctx context.Context) context.Context {
	return WithTraceID(ctx, GenerateTraceID())
}

// TraceIDFromContext extracts the trace ID from the context, if present.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// GetTraceID returns the trace ID or an empty string.
func GetTraceID(ctx context.Context) string {
	id, _ := TraceIDFromContext(ctx)
	return id
}

// FromContext returns a logger that includes the trace_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := TraceIDFromContext(ctx); ok {
		return slog.Default().With(AttrKeyTraceID, id)
	}
	return slog.Default()
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}

	InitLoggerWithWriter(config, &buf)

	Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "test-service", logEntry["service"])
	assert.Equal(t, "1.0.0", logEntry["version"])
	assert.Equal(t, "test", logEntry["environment"])
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, float64(42), logEntry["number"])
}

func TestLevelFiltering(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	Debug("hidden")
	Info("hidden too")
	Warn("visible")
	Error("also visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 2, strings.Count(out, "visible"))
}

func TestTraceIDContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "info", Format: "json"}, &buf)

	ctx := WithTraceID(context.Background(), "tick-123")
	assert.Equal(t, "tick-123", GetTraceID(ctx))

	FromContext(ctx).Info("traced")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.Equal(t, "tick-123", logEntry[AttrKeyTraceID])
}

func TestNewTrace_GeneratesID(t *testing.T) {
	ctx := NewTrace(context.Background())
	id, ok := TraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Len(t, id, 36)

	_, ok = TraceIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestConfigs(t *testing.T) {
	tests := []struct {
		name       string
		config     Config
		wantFormat string
		wantLevel  slog.Level
		wantSource bool
	}{
		{"default", DefaultConfig(), LogFormatText, slog.LevelInfo, false},
		{"production", ProductionConfig(), LogFormatJSON, slog.LevelInfo, false},
		{"development", DevelopmentConfig(), LogFormatText, slog.LevelDebug, true},
		{"unknown level falls back to info", Config{Level: "loud"}, "", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFormat, tt.config.Format)
			assert.Equal(t, tt.wantLevel, tt.config.LogLevel())
			assert.Equal(t, tt.wantSource, tt.config.AddSource)
		})
	}
}

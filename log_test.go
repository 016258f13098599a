package kestrel

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := NewLogger(tt.level, "text", &bytes.Buffer{})
			assert.True(t, l.Enabled(context.Background(), tt.want))
			assert.False(t, l.Enabled(context.Background(), tt.want-1))
		})
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("info", "json", &buf).Info("hello", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "kestrel", rec["lib"])
	assert.EqualValues(t, 3, rec["n"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("info", "text", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "lib=kestrel")
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	l := quietLogger()
	SetLogger(l)
	assert.Same(t, l, Logger())

	SetLogger(nil)
	assert.Same(t, l, Logger(), "nil must be ignored")
}

func TestSceneLoggerFromConfig(t *testing.T) {
	var buf bytes.Buffer
	prev := logOutput
	logOutput = &buf
	t.Cleanup(func() { logOutput = prev })

	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "json"
	s := NewScene(cfg, WithClock(&fakeClock{}))
	s.Logger().Debug("probe")
	assert.Contains(t, buf.String(), `"msg":"probe"`)
}

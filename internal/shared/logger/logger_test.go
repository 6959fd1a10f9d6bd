package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking/internal/shared/config"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name             string
		level            slog.Level
		minSourceLevel   slog.Level
		shouldHaveSource bool
	}{
		{"info below threshold", slog.LevelInfo, slog.LevelWarn, false},
		{"warn at threshold", slog.LevelWarn, slog.LevelWarn, true},
		{"error above threshold", slog.LevelError, slog.LevelWarn, true},
		{"debug with debug threshold", slog.LevelDebug, slog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.minSourceLevel))

			log.Log(context.Background(), tt.level, "message")

			hasSource := strings.Contains(buf.String(), "logger_test.go")
			assert.Equal(t, tt.shouldHaveSource, hasSource, buf.String())
		})
	}
}

func TestConditionalSourceHandler_KeepsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).
		With("component", "auth").
		WithGroup("req")

	log.Info("handled", "path", "/auth/login")

	out := buf.String()
	assert.Contains(t, out, "component=auth")
	assert.Contains(t, out, "req.path=/auth/login")
	assert.NotContains(t, out, "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInit_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	require.NoError(t, Init(config.LoggerConfig{Level: "info", Format: "json", OutputPath: path}, false))
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	Info("server started", "port", 3000)
	Debug("hidden")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"server started"`)
	assert.Contains(t, string(data), `"port":3000`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().Named("test").With("k", "v")
	assert.NotPanics(t, func() {
		l.Infow("ignored", "a", 1)
		l.Errorw("ignored")
	})
}

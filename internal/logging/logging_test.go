package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shwimple/shwimple/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for name, want := range tests {
		assert.Equal(t, want, ParseLevel(name), "ParseLevel(%q)", name)
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown", "page", "index")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "page=index")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	defer closer.Close()

	logger.Debug("built", "steps", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "built", record["msg"])
	assert.Equal(t, float64(3), record["steps"])
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shwimple.log")
	var buf bytes.Buffer
	logger, closer := New(config.LogConfig{Level: "info", Format: "text", File: path, MaxSizeMB: 1}, &buf)

	logger.With("component", "server").Info("listening", "addr", ":3000")
	require.NoError(t, closer.Close())

	assert.Contains(t, buf.String(), "msg=listening")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "listening", record["msg"])
	assert.Equal(t, "server", record["component"])
	assert.Equal(t, ":3000", record["addr"])
}

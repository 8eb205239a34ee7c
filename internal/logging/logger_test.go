package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juhahinkula/classroom-fix/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, expected, ParseLevel(input))
		})
	}
}

func TestMultiHandler(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	debugHandler := slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	warnHandler := slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := slog.New(NewMultiHandler(debugHandler, warnHandler)).With("student", "alice")

	logger.Debug("looking up invitation")
	logger.Warn("invitation lookup failed")

	assert.Contains(t, debugBuf.String(), "looking up invitation")
	assert.Contains(t, debugBuf.String(), "invitation lookup failed")
	assert.NotContains(t, warnBuf.String(), "looking up invitation")
	assert.Contains(t, warnBuf.String(), "invitation lookup failed")
	assert.Contains(t, warnBuf.String(), "student=alice")
}

func TestMultiHandlerEnabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewLoggerWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "classroom-fix.log")
	console, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	defer console.Close()

	logger := NewLogger(config.LoggingConfig{
		Level:      "debug",
		Format:     "json",
		File:       logFile,
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}, console)

	logger.Info("repair complete", "repaired", 2)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"repair complete"`)
	assert.Contains(t, string(data), `"repaired":2`)

	consoleData, err := os.ReadFile(console.Name())
	require.NoError(t, err)
	assert.Contains(t, string(consoleData), "repair complete")
}

func TestNewLoggerConsoleOnly(t *testing.T) {
	console, err := os.CreateTemp(t.TempDir(), "console")
	require.NoError(t, err)
	defer console.Close()

	logger := NewLogger(config.LoggingConfig{Level: "warn"}, console)
	logger.Info("hidden")
	logger.Warn("shown")

	data, err := os.ReadFile(console.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestShouldUseColorsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, shouldUseColors(f))
	assert.False(t, shouldUseColors(nil))
}

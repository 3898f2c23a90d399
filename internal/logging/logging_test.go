package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
	assert.Empty(t, cfg.File)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.AddSource)
}

func TestInit(t *testing.T) {
	t.Run("text_handler", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})

		Info("reminder due", KeyState, "due")
		assert.Contains(t, buf.String(), "reminder due")
		assert.Contains(t, buf.String(), Prefix)
		assert.False(t, Debug)
	})

	t.Run("json_handler", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

		DebugLog("tick", KeyCount, 3)
		assert.Contains(t, buf.String(), `"msg":"tick"`)
		assert.Contains(t, buf.String(), `"count":3`)
		assert.True(t, Debug)
	})

	t.Run("level_filters", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelWarn, Output: &buf})

		Info("hidden")
		Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
	})
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hydrate.log")
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, JSON: true, Output: &buf, File: path})
	t.Cleanup(func() { Close() })

	Error("append failed", KeyError, "disk full")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "append failed")
	assert.Contains(t, buf.String(), "append failed")

	assert.NoError(t, Close())
}

func TestContextLogging(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

	ctx := NewSessionContext(context.Background())
	id := SessionIDFromContext(ctx)
	require.Len(t, id, 36)

	LoggerFromContext(ctx).Info("started")
	assert.Contains(t, buf.String(), `"session":"`+id+`"`)

	buf.Reset()
	InfoContext(ctx, "info")
	ErrorContext(ctx, "error")
	assert.Contains(t, buf.String(), "info")
	assert.Contains(t, buf.String(), "error")
}

func TestSessionIDFromContext(t *testing.T) {
	assert.Empty(t, SessionIDFromContext(context.Background()))
	assert.Empty(t, SessionIDFromContext(nil))
	assert.Equal(t, "abc", SessionIDFromContext(WithSessionID(context.Background(), "abc")))
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}

func TestCronLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cl := Cron(logger)

	cl.Info("skip", "now", "x")
	assert.Empty(t, buf.String(), "cron info is logged at debug")

	cl.Error(errors.New("boom"), "panic", "job", "tick")
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"component":"cron"`)

	assert.NotNil(t, Cron(nil))
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, JSON: true, Output: &buf})

	With(KeyStore, "/tmp/log.txt").Info("opened")
	assert.Contains(t, buf.String(), `"store":"/tmp/log.txt"`)
}

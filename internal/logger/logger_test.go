package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		l, err := New(Config{Level: "debug", Console: true})
		require.NoError(t, err)
		defer l.Close()

		assert.NotNil(t, l)
	})

	t.Run("file output", func(t *testing.T) {
		tmpDir := t.TempDir()
		logFile := filepath.Join(tmpDir, "logs", "test.log")

		l, err := New(Config{Level: "info", File: logFile})
		require.NoError(t, err)

		l.Info().Str("component", "test").Msg("hello")
		require.NoError(t, l.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
		assert.Contains(t, string(data), "component")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		l, err := New(Config{Level: "bogus", Console: true})
		require.NoError(t, err)
		defer l.Close()

		assert.NotNil(t, l)
	})

	t.Run("redaction scrubs api keys", func(t *testing.T) {
		tmpDir := t.TempDir()
		logFile := filepath.Join(tmpDir, "test.log")

		l, err := New(Config{Level: "info", File: logFile, Redaction: true})
		require.NoError(t, err)

		l.Info().Msg("using key sk-abcdefghijklmnopqrstuvwxyz123456")
		require.NoError(t, l.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "sk-abcdefghijklmnopqrstuvwxyz123456")
		assert.Contains(t, string(data), "[REDACTED]")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Console)
	assert.True(t, cfg.Redaction)
}

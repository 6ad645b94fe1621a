package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junhyuk/finadvisor/internal/schedule"
)

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		cmd := GetRootCmd()
		cmd.SetArgs([]string{"--version"})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)

		assert.Contains(t, output.String(), "finadvisor version")
		assert.Contains(t, output.String(), GetVersion())
	})

	t.Run("help flag", func(t *testing.T) {
		cmd := GetRootCmd()
		cmd.SetArgs([]string{"--help"})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)

		helpText := output.String()
		assert.Contains(t, helpText, "FinAdvisor")
		assert.Contains(t, helpText, "analyst agents")
	})

	t.Run("global flags", func(t *testing.T) {
		cmd := GetRootCmd()

		configFlag := cmd.PersistentFlags().Lookup("config")
		require.NotNil(t, configFlag)
		assert.Equal(t, "", configFlag.DefValue)

		logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
		require.NotNil(t, logLevelFlag)
		assert.Equal(t, "", logLevelFlag.DefValue)
	})

	t.Run("subcommands registered", func(t *testing.T) {
		cmd := GetRootCmd()

		names := make([]string, 0)
		for _, sub := range cmd.Commands() {
			names = append(names, sub.Name())
		}

		assert.Contains(t, names, "run")
		assert.Contains(t, names, "watch")
		assert.Contains(t, names, "configure")
	})
}

func TestGetVersion(t *testing.T) {
	version := GetVersion()
	assert.NotEmpty(t, version)
	assert.True(t, strings.HasPrefix(version, "0."))
}

func TestNewSessionID(t *testing.T) {
	id := newSessionID("sess")
	assert.True(t, strings.HasPrefix(id, "sess-"))
	assert.Greater(t, len(id), len("sess-"))

	other := newSessionID("sess")
	assert.NotEqual(t, id, other)
}

func TestWatchSchedule(t *testing.T) {
	reset := func() {
		watchCron = ""
		watchEvery = 0
		watchAt = ""
	}

	t.Run("no schedule flag", func(t *testing.T) {
		reset()
		_, err := watchSchedule()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one")
	})

	t.Run("multiple schedule flags", func(t *testing.T) {
		reset()
		watchCron = "0 9 * * *"
		watchEvery = time.Hour

		_, err := watchSchedule()
		require.Error(t, err)
	})

	t.Run("every", func(t *testing.T) {
		reset()
		watchEvery = 6 * time.Hour

		s, err := watchSchedule()
		require.NoError(t, err)
		assert.Equal(t, schedule.KindEvery, s.Kind)
		assert.Equal(t, 6*time.Hour, s.Every)
	})

	t.Run("cron", func(t *testing.T) {
		reset()
		watchCron = "0 9 * * 1-5"

		s, err := watchSchedule()
		require.NoError(t, err)
		assert.Equal(t, schedule.KindCron, s.Kind)
		assert.Equal(t, "0 9 * * 1-5", s.Expr)
	})

	t.Run("at", func(t *testing.T) {
		reset()
		watchAt = "2026-09-01T09:00:00Z"

		s, err := watchSchedule()
		require.NoError(t, err)
		assert.Equal(t, schedule.KindAt, s.Kind)
		assert.Equal(t, "2026-09-01T09:00:00Z", s.At)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))

	// The cut must land on a rune boundary, not inside a multi-byte rune.
	out := truncate("매수 추천입니다", 4)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "매...", out)
}

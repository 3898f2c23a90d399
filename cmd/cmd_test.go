package cmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/hydrate/internal/config"
	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/model"
)

// refNow is Wednesday 2024-03-13 15:30 local time.
var refNow = time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestStatsRange(t *testing.T) {
	t.Run("no_args_is_open", func(t *testing.T) {
		r, err := statsRange(nil, "", "", refNow)
		require.NoError(t, err)
		assert.True(t, r.From.IsZero())
		assert.True(t, r.To.IsZero())
	})

	t.Run("period_words_joined", func(t *testing.T) {
		r, err := statsRange([]string{"this", "week"}, "", "", refNow)
		require.NoError(t, err)
		assert.Equal(t, date(t, "2024-03-11"), r.From)
		assert.Equal(t, date(t, "2024-03-17"), r.To)
	})

	t.Run("flags_replace_bounds", func(t *testing.T) {
		r, err := statsRange([]string{"this", "month"}, "2024-03-05", "2024-03-10", refNow)
		require.NoError(t, err)
		assert.Equal(t, date(t, "2024-03-05"), r.From)
		assert.Equal(t, date(t, "2024-03-10"), r.To)
	})

	t.Run("from_only", func(t *testing.T) {
		r, err := statsRange(nil, "2024-03-01", "", refNow)
		require.NoError(t, err)
		assert.Equal(t, date(t, "2024-03-01"), r.From)
		assert.True(t, r.To.IsZero())
	})

	t.Run("inverted", func(t *testing.T) {
		_, err := statsRange(nil, "2024-03-10", "2024-03-01", refNow)
		assert.Error(t, err)
	})

	t.Run("bad_period", func(t *testing.T) {
		_, err := statsRange([]string{"xyzzy", "plugh"}, "", "", refNow)
		assert.Error(t, err)
	})
}

func TestApplyRunFlags(t *testing.T) {
	base := config.Config{IntervalMinutes: 30, Tick: time.Second, Notifier: "auto"}

	t.Run("empty_keeps_config", func(t *testing.T) {
		cfg := base
		require.NoError(t, applyRunFlags(&cfg, "", "", ""))
		assert.Equal(t, base, cfg)
	})

	t.Run("all_flags", func(t *testing.T) {
		cfg := base
		require.NoError(t, applyRunFlags(&cfg, "5", "terminal", "1h"))
		assert.Equal(t, 60, cfg.IntervalMinutes)
		assert.Equal(t, 5*time.Second, cfg.Tick)
		assert.Equal(t, "terminal", cfg.Notifier)
	})

	t.Run("bare_interval_is_minutes", func(t *testing.T) {
		cfg := base
		require.NoError(t, applyRunFlags(&cfg, "", "", "45"))
		assert.Equal(t, 45, cfg.IntervalMinutes)
	})

	t.Run("bad_interval", func(t *testing.T) {
		cfg := base
		err := applyRunFlags(&cfg, "", "", "soon")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidInterval)
		assert.Equal(t, 30, cfg.IntervalMinutes)
	})

	t.Run("bad_notifier", func(t *testing.T) {
		cfg := base
		err := applyRunFlags(&cfg, "", "pigeon", "")
		assert.ErrorIs(t, err, errors.ErrInvalidNotifier)
	})

	t.Run("sub_second_tick", func(t *testing.T) {
		cfg := base
		err := applyRunFlags(&cfg, "500ms", "", "")
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestLogFileHint(t *testing.T) {
	hint := logFileHint(map[string]string{"log_file": ""})
	assert.Contains(t, hint, "hydrate config set log_file "+config.DefaultLogFile())

	assert.Empty(t, logFileHint(map[string]string{"log_file": "/tmp/h.log"}))
	// A single-key get for another key says nothing about logging.
	assert.Empty(t, logFileHint(map[string]string{"interval_minutes": "30"}))
}

func TestFixedCompletions(t *testing.T) {
	complete := fixedCompletions("cli", "json", "plain")
	got, directive := complete(&cobra.Command{}, nil, "j")
	assert.Equal(t, []string{"json"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCompleteConfigKeys(t *testing.T) {
	got, _ := completeConfigKeys(&cobra.Command{}, nil, "int")
	assert.Equal(t, []string{config.KeyIntervalMinutes}, got)

	got, _ = completeConfigKeys(&cobra.Command{}, []string{"tick"}, "")
	assert.Empty(t, got)
}

func TestCompletePeriodsMatchesName(t *testing.T) {
	got, _ := completePeriods(&cobra.Command{}, nil, "this")
	assert.Equal(t, []string{"this week\tsince Monday", "this month\tsince the 1st"}, got)
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"run", "dashboard", "drink", "stats", "history", "config", "service", "completion", "version"} {
		found, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bare  time.Duration
		want  time.Duration
	}{
		{"go_seconds", "5s", time.Second, 5 * time.Second},
		{"go_combined", "1h30m", time.Minute, 90 * time.Minute},
		{"bare_seconds", "5", time.Second, 5 * time.Second},
		{"bare_minutes", "45", time.Minute, 45 * time.Minute},
		{"words", "30 minutes", time.Second, 30 * time.Minute},
		{"hours_word", "2 hours", time.Second, 2 * time.Hour},
		{"decimal", "1.5h", time.Second, 90 * time.Minute},
		{"spaced_pair", "1h 30m", time.Second, 90 * time.Minute},
		{"minutes_seconds", "1 min 30 sec", time.Second, 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input, tt.bare)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "0", "0s", "-5m"} {
		_, err := ParseDuration(input, time.Minute)
		assert.Error(t, err, "input %q", input)
	}
}

func TestParseIntervalMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"45", 45},
		{"30m", 30},
		{"1h", 60},
		{"1.5h", 90},
		{"2 hours", 120},
	}
	for _, tt := range tests {
		got, err := ParseIntervalMinutes(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseIntervalMinutes("90s")
	assert.Error(t, err)
	_, err = ParseIntervalMinutes("0")
	assert.Error(t, err)
}

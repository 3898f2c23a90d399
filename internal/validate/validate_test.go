package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/hydrate/internal/errors"
)

func TestIntervalMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		wantErr bool
	}{
		{"default", 30, false},
		{"one_minute", 1, false},
		{"one_week", 7 * 24 * 60, false},
		{"zero", 0, true},
		{"negative", -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := IntervalMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				assert.ErrorIs(t, err, errors.ErrInvalidInterval)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseIntervalMinutes(t *testing.T) {
	minutes, err := ParseIntervalMinutes(" 45 ")
	require.NoError(t, err)
	assert.Equal(t, 45, minutes)

	for _, input := range []string{"", "abc", "1.5", "0", "-5"} {
		_, err := ParseIntervalMinutes(input)
		assert.ErrorIs(t, err, errors.ErrInvalidInterval, "input %q", input)
	}
}

func TestTick(t *testing.T) {
	assert.NoError(t, Tick(time.Second))
	assert.NoError(t, Tick(time.Minute))
	assert.Error(t, Tick(0))
	assert.Error(t, Tick(500*time.Millisecond))
	assert.Error(t, Tick(1500*time.Millisecond))
}

func TestStorePath(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, StorePath(dir+"/water_intake_log.txt"))
	assert.Error(t, StorePath(""))

	err := StorePath(dir)
	require.Error(t, err)
	ve, ok := errors.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "store_path", ve.Field)
}

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, NonEmpty("key", "value"))
	assert.Error(t, NonEmpty("key", "   "))
}

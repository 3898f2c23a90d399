package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/hydrate/internal/errors"
)

var t0 = time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local)

func newMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewMachine(DefaultIntervalMinutes)
	require.NoError(t, err)
	return m
}

// =============================================================================
// Start Tests
// =============================================================================

func TestMachine_StartWithoutHistory(t *testing.T) {
	m := newMachine(t)
	assert.Equal(t, StateUninitialized, m.State())

	assert.True(t, m.Start(time.Time{}, false))
	assert.Equal(t, StateDue, m.State())
	_, ok := m.Baseline()
	assert.False(t, ok)
}

func TestMachine_StartWithHistory(t *testing.T) {
	m := newMachine(t)

	assert.False(t, m.Start(t0, true))
	assert.Equal(t, StateWaiting, m.State())
	baseline, ok := m.Baseline()
	assert.True(t, ok)
	assert.True(t, baseline.Equal(t0))
}

func TestMachine_StartTwiceIsNoop(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)

	assert.False(t, m.Start(time.Time{}, false))
	baseline, _ := m.Baseline()
	assert.True(t, baseline.Equal(t0))
}

// =============================================================================
// Tick Tests
// =============================================================================

func TestMachine_TickBoundary(t *testing.T) {
	t.Run("one_second_before", func(t *testing.T) {
		m := newMachine(t)
		m.Start(t0, true)

		now := t0.Add(29*time.Minute + 59*time.Second)
		assert.False(t, m.Tick(now))
		assert.Equal(t, StateWaiting, m.State())
		assert.Equal(t, time.Second, m.Remaining(now))
	})

	t.Run("exactly_at_interval", func(t *testing.T) {
		m := newMachine(t)
		m.Start(t0, true)

		assert.True(t, m.Tick(t0.Add(30*time.Minute)))
		assert.Equal(t, StateDue, m.State())
		assert.Equal(t, time.Duration(0), m.Remaining(t0.Add(30*time.Minute)))
	})

	t.Run("due_repeats_until_answered", func(t *testing.T) {
		m := newMachine(t)
		m.Start(t0, true)
		m.Tick(t0.Add(31 * time.Minute))

		assert.True(t, m.Tick(t0.Add(32*time.Minute)))
		assert.Equal(t, StateDue, m.State())
	})

	t.Run("uninitialized_never_fires", func(t *testing.T) {
		m := newMachine(t)
		assert.False(t, m.Tick(t0))
		assert.Equal(t, StateUninitialized, m.State())
	})
}

// =============================================================================
// Response Tests
// =============================================================================

func TestMachine_Confirm(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)
	m.Tick(t0.Add(30 * time.Minute))

	confirmedAt := t0.Add(30*time.Minute + 5*time.Second)
	require.NoError(t, m.Confirm(confirmedAt))

	assert.Equal(t, StateWaiting, m.State())
	baseline, _ := m.Baseline()
	assert.True(t, baseline.Equal(confirmedAt))
	assert.False(t, m.Tick(confirmedAt.Add(29*time.Minute)))
	assert.True(t, m.Tick(confirmedAt.Add(30*time.Minute)))
}

func TestMachine_ConfirmWhileWaiting(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)

	at := t0.Add(10 * time.Minute)
	require.NoError(t, m.Confirm(at))
	assert.Equal(t, 30*time.Minute, m.Remaining(at))
}

func TestMachine_Snooze(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)
	due := t0.Add(30 * time.Minute)
	m.Tick(due)

	snoozedAt := due.Add(10 * time.Second)
	require.NoError(t, m.Snooze(snoozedAt))

	assert.Equal(t, StateWaiting, m.State())
	assert.True(t, m.Suppressed())
	baseline, _ := m.Baseline()
	assert.True(t, baseline.Equal(t0), "snooze leaves the baseline unchanged")

	assert.False(t, m.Tick(snoozedAt.Add(time.Second)))
	assert.False(t, m.Tick(snoozedAt.Add(29*time.Minute)))
	assert.True(t, m.Suppressed())
	assert.Equal(t, time.Minute, m.Remaining(snoozedAt.Add(29*time.Minute)))

	assert.True(t, m.Tick(snoozedAt.Add(30*time.Minute)))
	assert.Equal(t, StateDue, m.State())
	assert.False(t, m.Suppressed())
}

func TestMachine_SnoozeOnFirstRun(t *testing.T) {
	m := newMachine(t)
	m.Start(time.Time{}, false)

	require.NoError(t, m.Snooze(t0))
	assert.False(t, m.Tick(t0.Add(time.Minute)))
	assert.Equal(t, 29*time.Minute, m.Remaining(t0.Add(time.Minute)))
	assert.True(t, m.Tick(t0.Add(30*time.Minute)))
}

func TestMachine_SnoozeRequiresDue(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)

	assert.ErrorIs(t, m.Snooze(t0), errors.ErrNotDue)
	assert.Equal(t, StateWaiting, m.State())
	assert.False(t, m.Suppressed())
}

func TestMachine_ConfirmClearsSnooze(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)
	m.Tick(t0.Add(30 * time.Minute))
	require.NoError(t, m.Snooze(t0.Add(30*time.Minute)))

	require.NoError(t, m.Confirm(t0.Add(35*time.Minute)))
	assert.False(t, m.Suppressed())
}

func TestMachine_ExitIsAbsorbing(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)
	m.Exit()

	assert.Equal(t, StateTerminated, m.State())
	assert.False(t, m.Tick(t0.Add(24*time.Hour)))
	assert.ErrorIs(t, m.Confirm(t0), errors.ErrTerminated)
	assert.ErrorIs(t, m.Snooze(t0), errors.ErrTerminated)
	assert.False(t, m.Start(t0, true))
	assert.Equal(t, StateTerminated, m.State())
	assert.Equal(t, time.Duration(0), m.Remaining(t0))
}

// =============================================================================
// SetInterval Tests
// =============================================================================

func TestMachine_SetIntervalRejectsNonPositive(t *testing.T) {
	for _, minutes := range []int{0, -5} {
		m := newMachine(t)
		m.Start(t0, true)

		err := m.SetInterval(minutes)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.ErrorIs(t, err, errors.ErrInvalidInterval)

		assert.Equal(t, 30*time.Minute, m.Interval())
		assert.Equal(t, StateWaiting, m.State())
	}
}

func TestMachine_SetIntervalAppliesOnNextTick(t *testing.T) {
	m := newMachine(t)
	m.Start(t0, true)

	require.NoError(t, m.SetInterval(10))
	assert.Equal(t, StateWaiting, m.State(), "no immediate re-trigger")
	assert.Equal(t, 10*time.Minute, m.Interval())

	assert.False(t, m.Tick(t0.Add(9*time.Minute)))
	assert.True(t, m.Tick(t0.Add(10*time.Minute)))
}

func TestNewMachineValidates(t *testing.T) {
	_, err := NewMachine(0)
	assert.ErrorIs(t, err, errors.ErrInvalidInterval)
}

func TestStateAndResponseString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "due", StateDue.String())
	assert.Equal(t, "terminated", StateTerminated.String())

	text, err := StateDue.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "due", string(text))

	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "snoozed", Snoozed.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "unknown", Response(0).String())
}

package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/storage"
)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// steppingClock advances by step on every read.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// scriptedNotifier answers prompts from a fixed script and counts calls.
type scriptedNotifier struct {
	mu        sync.Mutex
	responses []Response
	err       error
	calls     int
	titles    []string
}

func (n *scriptedNotifier) Prompt(ctx context.Context, title, message string) (Response, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	n.titles = append(n.titles, title)
	if n.err != nil {
		return 0, n.err
	}
	if len(n.responses) == 0 {
		return Exit, nil
	}
	resp := n.responses[0]
	n.responses = n.responses[1:]
	return resp, nil
}

func (n *scriptedNotifier) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// memoryStore is an in-memory IntakeStore that can be told to fail.
type memoryStore struct {
	events   []model.IntakeEvent
	readErr  error
	writeErr error
}

func (s *memoryStore) Append(event model.IntakeEvent) error {
	if s.writeErr != nil {
		return errors.NewStorageWriteError("memory", s.writeErr)
	}
	s.events = append(s.events, event)
	return nil
}

func (s *memoryStore) LastTimestamp() (time.Time, bool, error) {
	if s.readErr != nil {
		return time.Time{}, false, errors.NewStorageReadError("memory", s.readErr)
	}
	if len(s.events) == 0 {
		return time.Time{}, false, nil
	}
	return s.events[len(s.events)-1].Timestamp, true, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestScheduler(t *testing.T, store IntakeStore, notifier Notifier, clock *fakeClock) *Scheduler {
	t.Helper()
	s, err := New(store, notifier, Options{Clock: clock, Logger: quietLogger()})
	require.NoError(t, err)
	return s
}

func seededLog(t *testing.T, timestamps ...string) *storage.IntakeLog {
	t.Helper()
	log := storage.NewIntakeLog(filepath.Join(t.TempDir(), storage.StoreFileName))
	var content string
	for _, ts := range timestamps {
		content += ts + " - Drank water\n"
	}
	if content != "" {
		require.NoError(t, os.WriteFile(log.Path(), []byte(content), 0644))
	}
	return log
}

func parseLocal(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(model.TimestampLayout, value, time.Local)
	require.NoError(t, err)
	return ts
}

// =============================================================================
// Scenario Tests
// =============================================================================

func TestScheduler_EmptyStorePromptsImmediately(t *testing.T) {
	clock := &fakeClock{now: t0}
	notifier := &scriptedNotifier{responses: []Response{Snoozed}}
	s := newTestScheduler(t, seededLog(t), notifier, clock)

	assert.True(t, s.Start(context.Background()))
	assert.Equal(t, StateDue, s.Status().State)

	require.NoError(t, s.Tick(context.Background()))
	assert.Equal(t, 1, notifier.Calls())
	assert.Equal(t, DefaultTitle, notifier.titles[0])
}

func TestScheduler_WaitingBeforeInterval(t *testing.T) {
	clock := &fakeClock{now: parseLocal(t, "2024-01-01 08:29:59.000000")}
	notifier := &scriptedNotifier{}
	s := newTestScheduler(t, seededLog(t, "2024-01-01 08:00:00.000000"), notifier, clock)

	assert.False(t, s.Start(context.Background()))
	require.NoError(t, s.Tick(context.Background()))

	status := s.Status()
	assert.Equal(t, StateWaiting, status.State)
	assert.Equal(t, time.Second, status.Remaining)
	assert.Equal(t, 0, notifier.Calls())
}

func TestScheduler_DueAtInterval(t *testing.T) {
	clock := &fakeClock{now: parseLocal(t, "2024-01-01 08:30:00.000000")}
	s := newTestScheduler(t, seededLog(t, "2024-01-01 08:00:00.000000"), nil, clock)

	s.Start(context.Background())
	assert.True(t, s.Poll())
	assert.Equal(t, StateDue, s.Status().State)
	assert.True(t, s.Status().Pending)
}

func TestScheduler_ConfirmAppendsAndResetsBaseline(t *testing.T) {
	log := seededLog(t, "2024-01-01 08:00:00.000000")
	clock := &fakeClock{now: parseLocal(t, "2024-01-01 08:30:00.000000")}
	s := newTestScheduler(t, log, nil, clock)
	ctx := context.Background()

	s.Start(ctx)
	require.True(t, s.Poll())

	confirmedAt := parseLocal(t, "2024-01-01 08:30:05.000000")
	clock.Set(confirmedAt)
	require.NoError(t, s.Respond(ctx, Confirmed))

	status := s.Status()
	assert.Equal(t, StateWaiting, status.State)
	assert.True(t, status.Baseline.Equal(confirmedAt))
	assert.False(t, status.Pending)

	events, err := log.LoadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[1].Timestamp.Equal(confirmedAt))
}

func TestScheduler_RestartResume(t *testing.T) {
	clock := &fakeClock{now: parseLocal(t, "2024-01-02 07:00:00.000000")}
	log := seededLog(t,
		"2024-01-01 08:00:00.000000",
		"2024-01-01 21:45:10.250000",
	)
	f, err := os.OpenFile(log.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("garbage\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s := newTestScheduler(t, log, nil, clock)
	s.Start(context.Background())

	status := s.Status()
	require.True(t, status.HasBaseline)
	assert.True(t, status.Baseline.Equal(parseLocal(t, "2024-01-01 21:45:10.250000")))
}

// =============================================================================
// Error Handling Tests
// =============================================================================

func TestScheduler_FailedConfirmKeepsReminderDue(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	clock := &fakeClock{now: t0.Add(30 * time.Minute)}
	s := newTestScheduler(t, store, nil, clock)
	ctx := context.Background()

	s.Start(ctx)
	require.True(t, s.Poll())

	store.writeErr = errors.ErrDiskFull
	err := s.Respond(ctx, Confirmed)
	require.Error(t, err)
	assert.True(t, errors.IsStorageWriteError(err))

	status := s.Status()
	assert.Equal(t, StateDue, status.State)
	assert.True(t, status.Baseline.Equal(t0), "baseline must not move")
	assert.Len(t, store.events, 1)

	// The prompt is issued again on the next tick.
	clock.Set(t0.Add(31 * time.Minute))
	assert.True(t, s.Poll())
}

func TestScheduler_ReadErrorTreatedAsNoHistory(t *testing.T) {
	store := &memoryStore{readErr: os.ErrPermission}
	s := newTestScheduler(t, store, nil, &fakeClock{now: t0})

	assert.True(t, s.Start(context.Background()))
	assert.Equal(t, StateDue, s.Status().State)
}

func TestScheduler_PromptFailure(t *testing.T) {
	store := &memoryStore{}
	notifier := &scriptedNotifier{err: assert.AnError}
	s := newTestScheduler(t, store, notifier, &fakeClock{now: t0})
	ctx := context.Background()

	s.Start(ctx)
	err := s.Tick(ctx)
	assert.ErrorIs(t, err, errors.ErrPromptFailed)
	assert.ErrorIs(t, err, assert.AnError)

	status := s.Status()
	assert.Equal(t, StateDue, status.State)
	assert.False(t, status.Pending)
}

func TestScheduler_TickWithoutNotifier(t *testing.T) {
	s := newTestScheduler(t, &memoryStore{}, nil, &fakeClock{now: t0})
	s.Start(context.Background())

	assert.ErrorIs(t, s.Tick(context.Background()), errors.ErrPromptFailed)
	assert.False(t, s.Status().Pending)
}

// =============================================================================
// Poll / Respond Tests
// =============================================================================

func TestScheduler_PollReturnsTrueOnce(t *testing.T) {
	s := newTestScheduler(t, &memoryStore{}, nil, &fakeClock{now: t0})
	ctx := context.Background()
	s.Start(ctx)

	assert.True(t, s.Poll())
	assert.False(t, s.Poll(), "prompt already outstanding")

	require.NoError(t, s.Respond(ctx, Snoozed))
	assert.False(t, s.Poll())
	assert.True(t, s.Status().Suppressed)
}

func TestScheduler_RespondConfirmedWhenNotDue(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	s := newTestScheduler(t, store, nil, &fakeClock{now: t0.Add(time.Minute)})
	s.Start(context.Background())

	assert.ErrorIs(t, s.Respond(context.Background(), Confirmed), errors.ErrNotDue)
	assert.Len(t, store.events, 1)
}

func TestScheduler_RespondUnknown(t *testing.T) {
	s := newTestScheduler(t, &memoryStore{}, nil, &fakeClock{now: t0})
	s.Start(context.Background())
	assert.Error(t, s.Respond(context.Background(), Response(99)))
}

func TestScheduler_Record(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	clock := &fakeClock{now: t0.Add(10 * time.Minute)}
	s := newTestScheduler(t, store, nil, clock)
	ctx := context.Background()

	assert.ErrorIs(t, s.Record(ctx), errors.ErrNotDue, "records before Start are rejected")
	s.Start(ctx)
	require.NoError(t, s.Record(ctx))

	assert.Len(t, store.events, 2)
	assert.Equal(t, 30*time.Minute, s.Status().Remaining)
}

func TestScheduler_Exit(t *testing.T) {
	notifier := &scriptedNotifier{responses: []Response{Exit}}
	s := newTestScheduler(t, &memoryStore{}, notifier, &fakeClock{now: t0})
	ctx := context.Background()
	s.Start(ctx)

	require.NoError(t, s.Tick(ctx))
	assert.True(t, s.Terminated())
	assert.ErrorIs(t, s.Tick(ctx), errors.ErrTerminated)
	assert.ErrorIs(t, s.Record(ctx), errors.ErrTerminated)
}

func TestScheduler_SetInterval(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	clock := &fakeClock{now: t0.Add(20 * time.Minute)}
	s := newTestScheduler(t, store, nil, clock)
	s.Start(context.Background())

	assert.ErrorIs(t, s.SetInterval(0), errors.ErrInvalidInterval)
	assert.ErrorIs(t, s.SetInterval(-5), errors.ErrInvalidInterval)
	assert.Equal(t, 30*time.Minute, s.Status().Interval)
	assert.Equal(t, StateWaiting, s.Status().State)

	require.NoError(t, s.SetInterval(15))
	assert.Equal(t, StateWaiting, s.Status().State)
	assert.True(t, s.Poll())
}

func TestNewValidatesInterval(t *testing.T) {
	_, err := New(&memoryStore{}, nil, Options{IntervalMinutes: -1})
	assert.ErrorIs(t, err, errors.ErrInvalidInterval)

	s, err := New(&memoryStore{}, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, s.Status().Interval)
}

// =============================================================================
// Run Tests
// =============================================================================

func TestScheduler_RunUntilExit(t *testing.T) {
	store := &memoryStore{}
	clock := &steppingClock{now: t0, step: 15 * time.Minute}
	notifier := &scriptedNotifier{responses: []Response{Confirmed, Snoozed, Exit}}
	s, err := New(store, notifier, Options{Clock: clock, Logger: quietLogger()})
	require.NoError(t, err)

	// Every clock read advances 15 minutes:
	//   t0     first evaluation, no history, prompt -> confirmed at t0+15m
	//   t0+30m waiting
	//   t0+45m due, prompt -> snoozed at t0+60m
	//   t0+75m suppressed
	//   t0+90m snooze over, prompt -> exit
	ticks := make(chan time.Time, 10)
	for i := 0; i < cap(ticks); i++ {
		ticks <- time.Time{}
	}

	require.NoError(t, s.Run(context.Background(), ticks))

	assert.Equal(t, 3, notifier.Calls())
	require.Len(t, store.events, 1)
	assert.True(t, store.events[0].Timestamp.Equal(t0.Add(15*time.Minute)))
	assert.True(t, s.Terminated())
	assert.Len(t, ticks, 6)
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	s := newTestScheduler(t, store, &scriptedNotifier{}, &fakeClock{now: t0})

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(ctx, ticks) }()

	ticks <- time.Time{}
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestScheduler_RunReturnsPromptErrors(t *testing.T) {
	s := newTestScheduler(t, &memoryStore{}, &scriptedNotifier{err: assert.AnError}, &fakeClock{now: t0})

	err := s.Run(context.Background(), make(chan time.Time))
	assert.ErrorIs(t, err, errors.ErrPromptFailed)
}

func TestScheduler_RunClosedTicks(t *testing.T) {
	store := &memoryStore{}
	store.events = append(store.events, model.NewIntakeEvent(t0))
	s := newTestScheduler(t, store, &scriptedNotifier{}, &fakeClock{now: t0})

	ticks := make(chan time.Time)
	close(ticks)
	assert.NoError(t, s.Run(context.Background(), ticks))
}

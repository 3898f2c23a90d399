// Package scheduler decides when to remind the user to drink water and
// applies their answers. Machine holds the pure state; Scheduler executes
// its effects against an injected clock, notifier and intake store; Runner
// drives Scheduler from a cron tick.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/logging"
	"github.com/manav03panchal/hydrate/internal/model"
)

// Default prompt text.
const (
	DefaultTitle   = "Water Reminder"
	DefaultMessage = "Did you drink water?"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Notifier presents the three-way reminder prompt and blocks until the user
// answers.
type Notifier interface {
	Prompt(ctx context.Context, title, message string) (Response, error)
}

// IntakeStore is the part of the intake log the scheduler needs.
type IntakeStore interface {
	Append(event model.IntakeEvent) error
	LastTimestamp() (time.Time, bool, error)
}

// Options configures a Scheduler.
type Options struct {
	IntervalMinutes int
	Clock           Clock
	Logger          *slog.Logger
	Title           string
	Message         string
}

// Status is a point-in-time snapshot for display.
type Status struct {
	State       State         `json:"state"`
	Baseline    time.Time     `json:"baseline,omitempty"`
	HasBaseline bool          `json:"has_baseline"`
	Interval    time.Duration `json:"interval"`
	Remaining   time.Duration `json:"remaining"`
	Suppressed  bool          `json:"suppressed"`
	Pending     bool          `json:"pending"`
}

// Scheduler owns a Machine and carries out its effects. All methods are
// safe for concurrent use; at most one prompt is outstanding at a time.
type Scheduler struct {
	mu       sync.Mutex
	machine  *Machine
	clock    Clock
	notifier Notifier
	store    IntakeStore
	logger   *slog.Logger
	title    string
	message  string
	pending  bool
}

// New creates a scheduler. notifier may be nil for hosts that only use
// Poll and Respond.
func New(store IntakeStore, notifier Notifier, opts Options) (*Scheduler, error) {
	if opts.IntervalMinutes == 0 {
		opts.IntervalMinutes = DefaultIntervalMinutes
	}
	machine, err := NewMachine(opts.IntervalMinutes)
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = logging.Logger()
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Message == "" {
		opts.Message = DefaultMessage
	}

	return &Scheduler{
		machine:  machine,
		clock:    opts.Clock,
		notifier: notifier,
		store:    store,
		logger:   opts.Logger.With("component", "scheduler"),
		title:    opts.Title,
		message:  opts.Message,
	}, nil
}

// Start seeds the baseline from the intake log and reports whether a
// reminder is due right away. An unreadable log is logged and treated as
// no history for this run.
func (s *Scheduler) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok, err := s.store.LastTimestamp()
	if err != nil {
		s.logger.WarnContext(ctx, "intake log unavailable, starting without history",
			logging.KeyError, err)
		ok = false
	}

	due := s.machine.Start(last, ok)
	s.logger.DebugContext(ctx, "scheduler started",
		logging.KeyState, s.machine.State(),
		logging.KeyBaseline, last,
		logging.KeyInterval, s.machine.Interval())
	return due
}

// Tick runs one evaluation. When a reminder is due the notifier is invoked
// synchronously and its answer applied.
func (s *Scheduler) Tick(ctx context.Context) error {
	if !s.Poll() {
		if s.Terminated() {
			return errors.ErrTerminated
		}
		return nil
	}

	if s.notifier == nil {
		s.release()
		return fmt.Errorf("%w: no notifier configured", errors.ErrPromptFailed)
	}

	s.logger.InfoContext(ctx, "reminder due")
	resp, err := s.notifier.Prompt(ctx, s.title, s.message)
	if err != nil {
		s.release()
		return fmt.Errorf("%w: %w", errors.ErrPromptFailed, err)
	}
	return s.Respond(ctx, resp)
}

// Poll evaluates the elapsed check and reports whether the caller should
// show a prompt now. It returns true at most once until Respond is called.
func (s *Scheduler) Poll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending {
		return false
	}
	if !s.machine.Tick(s.clock.Now()) {
		return false
	}
	s.pending = true
	return true
}

// Respond applies the user's answer to an outstanding prompt. A Confirmed
// answer whose append fails leaves the reminder due with the baseline
// unchanged and returns the storage error.
func (s *Scheduler) Respond(ctx context.Context, resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = false
	now := s.clock.Now()
	logger := s.logger.With(logging.KeyResponse, resp)

	switch resp {
	case Confirmed:
		if s.machine.State() != StateDue {
			return errors.ErrNotDue
		}
		if err := s.record(now); err != nil {
			logger.ErrorContext(ctx, "intake not recorded", logging.KeyError, err)
			return err
		}
	case Snoozed:
		if err := s.machine.Snooze(now); err != nil {
			return err
		}
	case Exit:
		s.machine.Exit()
	default:
		return fmt.Errorf("unknown response %d", resp)
	}

	logger.InfoContext(ctx, "reminder answered", logging.KeyState, s.machine.State())
	return nil
}

// Record logs an intake outside a prompt and restarts the countdown.
func (s *Scheduler) Record(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record(s.clock.Now()); err != nil {
		s.logger.ErrorContext(ctx, "intake not recorded", logging.KeyError, err)
		return err
	}
	s.pending = false
	s.logger.InfoContext(ctx, "intake recorded")
	return nil
}

// record appends first and moves the baseline only once the event is durable.
func (s *Scheduler) record(now time.Time) error {
	switch s.machine.State() {
	case StateTerminated:
		return errors.ErrTerminated
	case StateUninitialized:
		return errors.ErrNotDue
	}

	event := model.NewIntakeEvent(now)
	if err := s.store.Append(event); err != nil {
		return err
	}
	return s.machine.Confirm(event.Timestamp)
}

// Run evaluates the scheduler once immediately and then on every value from
// ticks, until the user exits or ctx is cancelled. Storage write failures
// are logged and the reminder is re-issued on the next tick.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan time.Time) error {
	s.Start(ctx)

	for {
		if err := s.Tick(ctx); err != nil {
			if errors.Is(err, errors.ErrTerminated) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !errors.IsStorageWriteError(err) {
				return err
			}
			s.logger.ErrorContext(ctx, "reminder will be repeated", logging.KeyError, err)
		}
		if s.Terminated() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
		}
	}
}

// SetInterval changes the reminder interval. Invalid values are rejected
// with a validation error and leave the scheduler unchanged.
func (s *Scheduler) SetInterval(minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.machine.SetInterval(minutes); err != nil {
		return err
	}
	s.logger.Debug("interval changed", logging.KeyInterval, s.machine.Interval())
	return nil
}

// Status returns a snapshot of the reminder state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	baseline, ok := s.machine.Baseline()
	return Status{
		State:       s.machine.State(),
		Baseline:    baseline,
		HasBaseline: ok,
		Interval:    s.machine.Interval(),
		Remaining:   s.machine.Remaining(now),
		Suppressed:  s.machine.Suppressed(),
		Pending:     s.pending,
	}
}

// Terminated reports whether the user has exited.
func (s *Scheduler) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State() == StateTerminated
}

// release clears the pending flag after a prompt that produced no answer.
func (s *Scheduler) release() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

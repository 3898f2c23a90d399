package scheduler

import (
	"time"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/validate"
)

// DefaultIntervalMinutes is the reminder interval used when none is configured.
const DefaultIntervalMinutes = 30

// State is the reminder lifecycle state.
type State int

const (
	// StateUninitialized is the state before the baseline has been seeded.
	StateUninitialized State = iota
	// StateWaiting counts down from the baseline.
	StateWaiting
	// StateDue means the interval elapsed and a prompt is outstanding.
	StateDue
	// StateTerminated is absorbing; no further ticks are processed.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateDue:
		return "due"
	case StateTerminated:
		return "terminated"
	default:
		return "uninitialized"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Response is the user's answer to a reminder prompt.
type Response int

const (
	// Confirmed records an intake and restarts the countdown.
	Confirmed Response = iota + 1
	// Snoozed defers the reminder without recording anything.
	Snoozed
	// Exit stops the reminder loop.
	Exit
)

func (r Response) String() string {
	switch r {
	case Confirmed:
		return "confirmed"
	case Snoozed:
		return "snoozed"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// Machine is the reminder state machine. It performs no I/O and reads no
// clock; every transition takes the current time as an argument.
//
// A snooze suppresses the reminder for one full interval measured from the
// moment of the snooze. Once that window has passed the suppression clears
// and the ordinary elapsed check applies.
type Machine struct {
	state       State
	baseline    time.Time
	hasBaseline bool
	interval    time.Duration
	suppressed  bool
	snoozedAt   time.Time
}

// NewMachine creates an uninitialized machine with the given interval.
func NewMachine(intervalMinutes int) (*Machine, error) {
	if err := validate.IntervalMinutes(intervalMinutes); err != nil {
		return nil, err
	}
	return &Machine{interval: time.Duration(intervalMinutes) * time.Minute}, nil
}

// Start seeds the baseline from the most recent recorded intake. Without
// history the machine is due immediately and Start returns true.
func (m *Machine) Start(last time.Time, ok bool) bool {
	if m.state != StateUninitialized {
		return m.state == StateDue
	}
	if ok {
		m.baseline = last
		m.hasBaseline = true
		m.state = StateWaiting
		return false
	}
	m.state = StateDue
	return true
}

// Tick evaluates the elapsed-time check at now and reports whether a prompt
// should be shown. A machine left in Due by a failed commit reports true
// again so the prompt is re-issued.
func (m *Machine) Tick(now time.Time) bool {
	switch m.state {
	case StateDue:
		return true
	case StateWaiting:
	default:
		return false
	}

	if m.suppressed {
		if now.Sub(m.snoozedAt) < m.interval {
			return false
		}
		m.suppressed = false
	}

	if m.hasBaseline && now.Sub(m.baseline) < m.interval {
		return false
	}

	m.state = StateDue
	return true
}

// Confirm records that an intake happened at now. It is accepted while Due
// and while Waiting, so an intake logged between reminders also restarts
// the countdown.
func (m *Machine) Confirm(now time.Time) error {
	switch m.state {
	case StateTerminated:
		return errors.ErrTerminated
	case StateUninitialized:
		return errors.ErrNotDue
	}
	m.baseline = now
	m.hasBaseline = true
	m.suppressed = false
	m.snoozedAt = time.Time{}
	m.state = StateWaiting
	return nil
}

// Snooze defers a due reminder. The baseline is left unchanged.
func (m *Machine) Snooze(now time.Time) error {
	switch m.state {
	case StateTerminated:
		return errors.ErrTerminated
	case StateDue:
	default:
		return errors.ErrNotDue
	}
	m.suppressed = true
	m.snoozedAt = now
	m.state = StateWaiting
	return nil
}

// Exit terminates the machine.
func (m *Machine) Exit() {
	m.state = StateTerminated
}

// SetInterval replaces the interval. Invalid values leave the machine
// untouched. The new interval applies from the next Tick; it never fires a
// reminder by itself.
func (m *Machine) SetInterval(minutes int) error {
	if err := validate.IntervalMinutes(minutes); err != nil {
		return err
	}
	m.interval = time.Duration(minutes) * time.Minute
	return nil
}

// Remaining returns the time left until the next reminder, for display only.
func (m *Machine) Remaining(now time.Time) time.Duration {
	if m.state != StateWaiting {
		return 0
	}

	var deadline time.Time
	switch {
	case m.suppressed:
		deadline = m.snoozedAt.Add(m.interval)
		if m.hasBaseline && m.baseline.Add(m.interval).After(deadline) {
			deadline = m.baseline.Add(m.interval)
		}
	case m.hasBaseline:
		deadline = m.baseline.Add(m.interval)
	default:
		return 0
	}

	if remaining := deadline.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Baseline returns the time of the last confirmed intake, if any.
func (m *Machine) Baseline() (time.Time, bool) {
	return m.baseline, m.hasBaseline
}

// Interval returns the reminder interval.
func (m *Machine) Interval() time.Duration {
	return m.interval
}

// Suppressed reports whether a snooze is in effect.
func (m *Machine) Suppressed() bool {
	return m.suppressed
}

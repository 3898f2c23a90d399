package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the on-disk timestamp encoding (microsecond resolution).
const TimestampLayout = "2006-01-02 15:04:05.000000"

// lineSeparator joins the timestamp and the action label in a record.
const lineSeparator = " - "

// lineRegex matches a complete record without its trailing newline.
var lineRegex = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6}) - (.+)$`)

// IntakeEvent is a single confirmed hydration action. It is never modified
// after it has been appended to the log.
type IntakeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
}

// NewIntakeEvent creates a drank-water event at the given time, truncated to
// the resolution the store can represent.
func NewIntakeEvent(at time.Time) IntakeEvent {
	return IntakeEvent{
		Timestamp: at.Truncate(time.Microsecond),
		Action:    ActionDrankWater,
	}
}

// Date returns the calendar date of the event.
func (e IntakeEvent) Date() Date {
	return DateOf(e.Timestamp)
}

// Encode renders the event as a single store line including the newline.
func (e IntakeEvent) Encode() string {
	return e.Timestamp.Format(TimestampLayout) + lineSeparator + e.Action.Label() + "\n"
}

// String implements fmt.Stringer.
func (e IntakeEvent) String() string {
	return strings.TrimSuffix(e.Encode(), "\n")
}

// DecodeIntakeEvent parses one store line. The trailing newline (and a
// carriage return) are optional. Lines that do not follow the record grammar
// return an error.
func DecodeIntakeEvent(line string) (IntakeEvent, error) {
	line = strings.TrimRight(line, "\r\n")

	match := lineRegex.FindStringSubmatch(line)
	if match == nil {
		return IntakeEvent{}, fmt.Errorf("malformed intake record: %q", line)
	}

	action := Action(match[2])
	if !action.Valid() {
		return IntakeEvent{}, fmt.Errorf("unknown intake action: %q", match[2])
	}

	ts, err := time.ParseInLocation(TimestampLayout, match[1], time.Local)
	if err != nil {
		return IntakeEvent{}, fmt.Errorf("invalid intake timestamp %q: %w", match[1], err)
	}

	return IntakeEvent{Timestamp: ts, Action: action}, nil
}

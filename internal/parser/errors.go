package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/hydrate/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// NewTimeParseError creates a new time parse error with examples.
func NewTimeParseError(field, input, message string, examples ...string) *TimeParseError {
	return &TimeParseError{
		Input:    input,
		Field:    field,
		Message:  message,
		Examples: examples,
	}
}

// FormatWithExamples returns the error message followed by examples.
func (e *TimeParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DurationExamples provides example duration formats.
var DurationExamples = []string{
	"45",
	"30m",
	"1h",
	"1h30m",
	"90 minutes",
}

// TimestampExamples provides example timestamp formats.
var TimestampExamples = []string{
	"9am",
	"yesterday at 3pm",
	"2 hours ago",
	"now",
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"2024-01-15",
	"yesterday",
	"3 days ago",
	"last friday",
}

// DateRangeExamples provides example date range formats.
var DateRangeExamples = []string{
	"today",
	"yesterday",
	"this week",
	"last month",
	"last 7 days",
	"all",
}

// NewDurationError creates a duration parse error with standard examples.
func NewDurationError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "duration",
		Message:    "could not parse duration",
		Examples:   DurationExamples,
		Suggestion: "Durations can be given in hours (h), minutes (m) or seconds (s).",
	}
}

// NewTimestampError creates a timestamp parse error with standard examples.
func NewTimestampError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "timestamp",
		Message:    "could not parse time",
		Examples:   TimestampExamples,
		Suggestion: "Try natural language like '9am' or '2 hours ago'.",
	}
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or a relative day such as 'yesterday'.",
	}
}

// NewDateRangeError creates a date range parse error with standard examples.
func NewDateRangeError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "period",
		Message:    "could not parse period",
		Examples:   DateRangeExamples,
		Suggestion: "Use period names like 'today', 'this week' or 'last 7 days'.",
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if suggestion == "" && len(e.Examples) > 0 {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	return errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
}

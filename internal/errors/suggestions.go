package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrInvalidInterval:  "Use a whole number of minutes, e.g. 'hydrate config set interval_minutes 45'.",
	ErrInvalidTimestamp: "Try formats like 'yesterday', '3 days ago', '2024-01-01' or 'last week'.",
	ErrInvalidConfigKey: "Run 'hydrate config get' to list the available keys.",
	ErrInvalidNotifier:  "Use one of: auto, terminal, dialog.",
	ErrTerminated:       "Start a new reminder loop with 'hydrate run'.",

	// System errors
	ErrDiskFull:         "Free up disk space and try again. The intake was not recorded.",
	ErrLockHeld:         "Another hydrate reminder is already running for this log. Stop it first.",
	ErrPermissionDenied: "Check file permissions of the intake log (see 'hydrate config get store_path').",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrInvalidInterval: {
		"hydrate config set interval_minutes 30",
		"hydrate run --interval 45",
	},
	ErrInvalidTimestamp: {
		"hydrate stats --from '7 days ago'",
		"hydrate stats last week",
		"hydrate stats --from 2024-01-01 --until 2024-01-31",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// durationPattern matches duration expressions like "2h", "30 min", "1h30m", "1.5h".
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes|s|sec|secs|second|seconds)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes|s|sec|secs|second|seconds))?$`)

// ParseDuration parses a human-readable duration. A bare number is read in
// the unit given by bare.
// Supports formats like:
//   - "45" (bare unit)
//   - "30m" or "30 minutes"
//   - "1h30m" or "1 hour 30 minutes"
//   - "1.5h"
func ParseDuration(input string, bare time.Duration) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, NewDurationError(input)
	}

	if d, err := time.ParseDuration(input); err == nil {
		if d <= 0 {
			return 0, NewDurationError(input)
		}
		return d, nil
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return 0, NewDurationError(input)
	}

	var total time.Duration

	value, _ := strconv.ParseFloat(matches[1], 64)
	if matches[2] == "" {
		total += time.Duration(value * float64(bare))
	} else {
		total += unitToDuration(value, strings.ToLower(matches[2]))
	}

	if matches[3] != "" {
		value, _ := strconv.ParseFloat(matches[3], 64)
		total += unitToDuration(value, strings.ToLower(matches[4]))
	}

	if total <= 0 {
		return 0, NewDurationError(input)
	}
	return total, nil
}

// ParseIntervalMinutes parses a reminder interval. Bare numbers are minutes;
// the result must be a positive whole number of minutes.
func ParseIntervalMinutes(input string) (int, error) {
	d, err := ParseDuration(input, time.Minute)
	if err != nil {
		return 0, err
	}
	if d%time.Minute != 0 {
		return 0, NewTimeParseError("interval", input, "must be a whole number of minutes", DurationExamples...)
	}
	return int(d / time.Minute), nil
}

func unitToDuration(value float64, unit string) time.Duration {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return time.Duration(value * float64(time.Hour))
	case "m", "min", "mins", "minute", "minutes":
		return time.Duration(value * float64(time.Minute))
	default:
		return time.Duration(value * float64(time.Second))
	}
}

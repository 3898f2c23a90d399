// Package validate provides input validation helpers for the hydrate CLI.
// Validators return *errors.ValidationError and never modify their input.
package validate

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/hydrate/internal/errors"
)

const (
	// MinTick is the finest tick cadence the cron runner supports.
	MinTick = time.Second
)

// IntervalMinutes validates a reminder interval.
func IntervalMinutes(minutes int) error {
	if minutes <= 0 {
		return errors.NewValidationError("interval_minutes", strconv.Itoa(minutes),
			"must be a positive whole number of minutes", errors.ErrInvalidInterval)
	}
	return nil
}

// ParseIntervalMinutes parses and validates an interval given as text.
func ParseIntervalMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError("interval_minutes", s,
			"must be a positive whole number of minutes", errors.ErrInvalidInterval)
	}
	if err := IntervalMinutes(minutes); err != nil {
		return 0, err
	}
	return minutes, nil
}

// Tick validates the scheduler tick cadence.
func Tick(d time.Duration) error {
	if d < MinTick {
		return errors.NewValidationError("tick", d.String(), "must be at least 1s", nil)
	}
	if d%time.Second != 0 {
		return errors.NewValidationError("tick", d.String(), "must be a whole number of seconds", nil)
	}
	return nil
}

// StorePath validates the intake log location. The file need not exist,
// but the path must not name a directory.
func StorePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewValidationError("store_path", "", "cannot be empty", nil)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errors.NewValidationError("store_path", path, "is a directory", nil)
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(field, "", "cannot be empty", nil)
	}
	return nil
}

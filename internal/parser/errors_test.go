package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/hydrate/internal/errors"
)

func TestTimeParseError(t *testing.T) {
	err := NewDurationError("soon")
	assert.Equal(t, "invalid duration 'soon': could not parse duration", err.Error())

	text := err.FormatWithExamples()
	assert.Contains(t, text, "Valid examples:")
	assert.Contains(t, text, "  - 30m")
	assert.Contains(t, text, "hours (h)")
}

func TestToUserError(t *testing.T) {
	ue := NewDateRangeError("fortnight").ToUserError()
	assert.True(t, errors.IsUserError(ue))
	assert.Equal(t, "period", ue.Field)
	assert.Contains(t, ue.Suggestion, "last 7 days")

	bare := NewTimeParseError("interval", "90s", "must be a whole number of minutes", "45", "1h", "30m", "2h")
	assert.Equal(t, "Try: 45, 1h, 30m", bare.ToUserError().Suggestion)
}

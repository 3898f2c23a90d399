package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(week|month|year)$`)

// lastDaysRegex matches "last 7 days" and "past 30 days".
var lastDaysRegex = regexp.MustCompile(`(?i)^(?:last|past)\s+(\d+)\s+days?$`)

// maxLastDays bounds "last N days" to a century.
const maxLastDays = 36500

// ParseTimestamp parses a natural language timestamp relative to now.
func ParseTimestamp(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "now") {
		return now, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, NewTimestampError(input)
	}
	return result.Time, nil
}

// ParseDate parses a calendar date. YYYY-MM-DD is tried first, then
// natural language such as "yesterday" or "3 days ago".
func ParseDate(input string, now time.Time) (model.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Date{}, NewDateError(input)
	}
	if d, err := model.ParseDate(input); err == nil {
		return d, nil
	}
	switch strings.ToLower(input) {
	case "today":
		return model.DateOf(now), nil
	case "yesterday":
		return model.DateOf(now).AddDays(-1), nil
	}

	t, err := ParseTimestamp(input, now)
	if err != nil {
		return model.Date{}, NewDateError(input)
	}
	return model.DateOf(t), nil
}

// ParseDateRange turns a period name into an inclusive date range.
// "all" and the empty string give an open range. Anything that is not a
// period name is parsed as a single date.
func ParseDateRange(period string, now time.Time) (stats.Range, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	today := model.DateOf(now)

	switch period {
	case "", "all":
		return stats.Range{}, nil
	case "today":
		return stats.Range{From: today, To: today}, nil
	case "yesterday":
		y := today.AddDays(-1)
		return stats.Range{From: y, To: y}, nil
	}

	if match := lastDaysRegex.FindStringSubmatch(period); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 || n > maxLastDays {
			return stats.Range{}, NewDateRangeError(period)
		}
		return stats.Range{From: today.AddDays(-(n - 1)), To: today}, nil
	}

	if match := periodRegex.FindStringSubmatch(period); match != nil {
		return periodRange(match[1], match[2], now), nil
	}

	d, err := ParseDate(period, now)
	if err != nil {
		return stats.Range{}, NewDateRangeError(period)
	}
	return stats.Range{From: d, To: d}, nil
}

// periodRange handles "this week", "last month" and friends. Weeks start
// on Monday.
func periodRange(modifier, period string, now time.Time) stats.Range {
	previous := modifier == "last" || modifier == "previous"

	var start, end time.Time
	switch period {
	case "week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day()-weekday+1, 0, 0, 0, 0, now.Location())
		if previous {
			start = start.AddDate(0, 0, -7)
		}
		end = start.AddDate(0, 0, 6)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, -1)

	default: // year
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			start = start.AddDate(-1, 0, 0)
		}
		end = start.AddDate(1, 0, -1)
	}

	return stats.Range{From: model.DateOf(start), To: model.DateOf(end)}
}

package parser

import (
	"testing"
	"time"
)

// FuzzParseDuration tests the duration parser with fuzz inputs.
// Run with: go test ./internal/parser -fuzz=FuzzParseDuration -fuzztime=30s
func FuzzParseDuration(f *testing.F) {
	seeds := []string{
		"1h", "30m", "1h30m", "90m", "45s", "5",
		"1 hour", "30 minutes", "2 hours 30 minutes", "1.5h",
		"", "-5m", "0", "abc",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		d, err := ParseDuration(input, time.Second)
		if err == nil && d <= 0 {
			t.Fatalf("ParseDuration(%q) = %v, want a positive duration", input, d)
		}
	})
}

// FuzzParseDateRange checks that ranges are never inverted.
// Run with: go test ./internal/parser -fuzz=FuzzParseDateRange -fuzztime=30s
func FuzzParseDateRange(f *testing.F) {
	seeds := []string{
		"today", "yesterday", "this week", "last month", "last 7 days",
		"past 3 days", "all", "2024-03-01", "last friday", "nonsense",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local)
	f.Fuzz(func(t *testing.T, input string) {
		r, err := ParseDateRange(input, now)
		if err != nil {
			return
		}
		if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
			t.Fatalf("ParseDateRange(%q) = %v..%v", input, r.From, r.To)
		}
	})
}

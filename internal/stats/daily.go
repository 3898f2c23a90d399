// Package stats derives per-day intake counts from the intake log.
// Everything here is a pure function of its input; nothing is stored.
package stats

import (
	"sort"
	"time"

	"github.com/manav03panchal/hydrate/internal/model"
)

// DailyCount is the number of intakes recorded on one calendar date.
type DailyCount struct {
	Date  model.Date `json:"date"`
	Count int        `json:"count"`
}

// Range is an inclusive span of calendar dates. A zero bound is open.
type Range struct {
	From model.Date
	To   model.Date
}

// Contains reports whether d falls inside the range.
func (r Range) Contains(d model.Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Summary holds totals over a sequence of daily counts. Best is nil when no
// day has any intake.
type Summary struct {
	Total   int         `json:"total"`
	Days    int         `json:"days"`
	Average float64     `json:"average"`
	Best    *DailyCount `json:"best,omitempty"`
}

// CountsByDate groups events by local calendar date and counts them.
func CountsByDate(events []model.IntakeEvent) map[model.Date]int {
	counts := make(map[model.Date]int)
	for _, e := range events {
		counts[e.Date()]++
	}
	return counts
}

// Sorted returns the counts ordered by ascending date.
func Sorted(counts map[model.Date]int) []DailyCount {
	result := make([]DailyCount, 0, len(counts))
	for date, count := range counts {
		result = append(result, DailyCount{Date: date, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

// Filter returns the subset of counts whose date lies in r.
func Filter(counts map[model.Date]int, r Range) map[model.Date]int {
	filtered := make(map[model.Date]int, len(counts))
	for date, count := range counts {
		if r.Contains(date) {
			filtered[date] = count
		}
	}
	return filtered
}

// FillGaps returns one entry per date from..to inclusive, taking counts from
// sorted and zero elsewhere. Entries of sorted outside the span are dropped.
func FillGaps(sorted []DailyCount, from, to model.Date) []DailyCount {
	if to.Before(from) {
		return nil
	}

	byDate := make(map[model.Date]int, len(sorted))
	for _, dc := range sorted {
		byDate[dc.Date] = dc.Count
	}

	var result []DailyCount
	for d := from; !d.After(to); d = d.AddDays(1) {
		result = append(result, DailyCount{Date: d, Count: byDate[d]})
	}
	return result
}

// Summarize computes totals over sorted. Days counts entries, so zero days
// produced by FillGaps lower the average. Ties for the best day go to the
// earliest date.
func Summarize(sorted []DailyCount) Summary {
	var s Summary
	for _, dc := range sorted {
		s.Total += dc.Count
		s.Days++
		if dc.Count > 0 && (s.Best == nil || dc.Count > s.Best.Count) {
			best := dc
			s.Best = &best
		}
	}
	if s.Days > 0 {
		s.Average = float64(s.Total) / float64(s.Days)
	}
	return s
}

// Today returns the count for the local date of now.
func Today(counts map[model.Date]int, now time.Time) int {
	return counts[model.DateOf(now)]
}

// Max returns the largest count in sorted, used to scale bar charts.
func Max(sorted []DailyCount) int {
	max := 0
	for _, dc := range sorted {
		if dc.Count > max {
			max = dc.Count
		}
	}
	return max
}

package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/parser"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// Stats command flags.
var (
	statsFlagFrom  string
	statsFlagUntil string
	statsFlagFill  bool
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats [PERIOD]",
	Aliases: []string{"stat", "count"},
	Short:   "Show drinks per day",
	Long: `Show how many times you drank water on each day, oldest first.

PERIOD is one of today, yesterday, this week, last week, this month,
last month, this year, last N days, all, or a single date.

Examples:
  hydrate stats
  hydrate stats this week
  hydrate stats last 30 days --fill
  hydrate stats --from 2024-03-01 --until 2024-03-15`,
	ValidArgsFunction: completePeriods,
	RunE:              runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFlagFrom, "from", "", "First day to include")
	statsCmd.Flags().StringVar(&statsFlagUntil, "until", "", "Last day to include")
	statsCmd.Flags().BoolVar(&statsFlagFill, "fill", false, "Show days without drinks as zero")

	rootCmd.AddCommand(statsCmd)
}

// statsRange resolves the positional period and the --from/--until flags.
// Flags narrow or replace the bounds of the period.
func statsRange(args []string, from, until string, now time.Time) (stats.Range, error) {
	r, err := parser.ParseDateRange(strings.Join(args, " "), now)
	if err != nil {
		return stats.Range{}, err
	}
	if from != "" {
		d, err := parser.ParseDate(from, now)
		if err != nil {
			return stats.Range{}, err
		}
		r.From = d
	}
	if until != "" {
		d, err := parser.ParseDate(until, now)
		if err != nil {
			return stats.Range{}, err
		}
		r.To = d
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return stats.Range{}, parser.NewTimeParseError("until", until,
			"end date is before start date", parser.DateExamples...)
	}
	return r, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	now := time.Now()
	r, err := statsRange(args, statsFlagFrom, statsFlagUntil, now)
	if err != nil {
		return err
	}

	events, err := ctx.Log.LoadAll()
	if err != nil {
		return err
	}

	days := stats.Sorted(stats.Filter(stats.CountsByDate(events), r))
	if statsFlagFill {
		from, to := r.From, r.To
		if from.IsZero() && len(days) > 0 {
			from = days[0].Date
		}
		if to.IsZero() {
			to = model.DateOf(now)
		}
		if !from.IsZero() {
			days = stats.FillGaps(days, from, to)
		}
	}
	summary := stats.Summarize(days)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDailyCounts(days, summary, r)
	}
	ctx.CLIFormatter().PrintDailyCounts(days, summary)
	return nil
}

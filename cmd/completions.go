package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/config"
)

// fixedCompletions completes from a fixed list of values.
func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(values, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeConfigKeys completes the first argument of config get/set.
func completeConfigKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return filterPrefix(config.SortedKeys(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completePeriods suggests period names for stats.
func completePeriods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	periods := []string{
		"today\ttoday's count",
		"yesterday\tyesterday's count",
		"this week\tsince Monday",
		"last week\tthe previous week",
		"this month\tsince the 1st",
		"last month\tthe previous month",
		"last 7 days\tthe past week",
		"all\tfull history",
	}
	return filterPrefix(periods, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var filtered []string
	for _, v := range values {
		if strings.HasPrefix(strings.Split(v, "\t")[0], prefix) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/errors"
)

var historyFlagLimit int

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist", "ls"},
	Short:   "List recorded drinks",
	Long: `List recorded drinks in the order they were logged, newest last.

Examples:
  hydrate history
  hydrate history --limit 20
  hydrate history --format json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "n", 0, "Show only the last N drinks (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyFlagLimit < 0 {
		return errors.NewUserErrorWithField("limit", cmd.Flag("limit").Value.String(),
			"limit cannot be negative", "Use --limit 0 to show everything")
	}

	events, err := ctx.Log.LoadAll()
	if err != nil {
		return err
	}
	total := len(events)
	if historyFlagLimit > 0 && total > historyFlagLimit {
		events = events[total-historyFlagLimit:]
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintHistory(events, total)
	}
	ctx.CLIFormatter().PrintHistory(events)
	return nil
}

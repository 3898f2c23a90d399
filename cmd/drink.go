package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/model"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// drinkCmd represents the drink command.
var drinkCmd = &cobra.Command{
	Use:     "drink",
	Aliases: []string{"log", "add"},
	Short:   "Record a drink now",
	Long: `Record that you drank water just now, without waiting for a reminder.

A running reminder loop picks the new entry up as its next baseline only
after it restarts; use the dashboard's y key to reset a live countdown.

Examples:
  hydrate drink
  hydrate log`,
	Args: cobra.NoArgs,
	RunE: runDrink,
}

func init() {
	rootCmd.AddCommand(drinkCmd)
}

func runDrink(cmd *cobra.Command, args []string) error {
	now := time.Now()
	event := model.NewIntakeEvent(now)
	if err := ctx.Log.Append(event); err != nil {
		return err
	}
	ctx.Logger.Info("intake recorded", "at", event.Timestamp, "source", "cli")

	events, err := ctx.Log.LoadAll()
	if err != nil {
		return err
	}
	today := stats.Today(stats.CountsByDate(events), now)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintRecorded(event, today)
	}
	ctx.CLIFormatter().PrintRecorded(event, today)
	return nil
}

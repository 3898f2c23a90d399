package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/daemon"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/storage"
	"github.com/manav03panchal/hydrate/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the live reminder dashboard",
	Long: `Open a terminal dashboard that counts down to the next reminder and
asks in place when it is time to drink.

The dashboard shows:
  - Time until the next reminder
  - Today's count and the last 7 days as bars

Keyboard Controls:
  y / enter  I drank water
  s          Snooze for one interval
  + / -      Change the interval by 5 minutes
  r          Refresh history
  q          Exit

Examples:
  hydrate dashboard
  hydrate dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	lock := storage.NewFileLock(ctx.Log.Path())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	// The dashboard prompts through its own view, so no Notifier is set.
	sched, err := scheduler.New(ctx.Log, nil, scheduler.Options{
		IntervalMinutes: ctx.Config.IntervalMinutes,
		Logger:          ctx.Logger,
	})
	if err != nil {
		return err
	}

	runCtx, stop := daemon.WithShutdown(ctx.Session, ctx.Logger)
	defer stop()

	sched.Start(runCtx)
	return tui.Run(runCtx, tui.DashboardConfig{
		Scheduler: sched,
		History:   ctx.Log,
	})
}

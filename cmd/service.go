package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/daemon"
)

// serviceCmd represents the service command.
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Run reminders in the background at login",
	Long: `Install hydrate as a macOS login agent. The agent runs
"hydrate run --notifier dialog" and prompts with a system dialog.

Examples:
  hydrate service install
  hydrate service status
  hydrate service uninstall`,
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install and load the login agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := daemon.NewServiceManager(flagConfig)
		if err != nil {
			return err
		}
		if err := m.Install(); err != nil {
			return err
		}
		ctx.Logger.Info("service installed", "path", m.Path())
		ctx.CLIFormatter().Success("Installed " + m.Path())
		ctx.CLIFormatter().Muted("  logs: " + daemon.LogPath())
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Unload and remove the login agent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := daemon.NewServiceManager(flagConfig)
		if err != nil {
			return err
		}
		if err := m.Uninstall(); err != nil {
			return err
		}
		ctx.CLIFormatter().Success("Removed " + m.Path())
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the login agent is installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := daemon.NewServiceManager(flagConfig)
		if err != nil {
			return err
		}
		if m.IsInstalled() {
			ctx.CLIFormatter().Success("Installed at " + m.Path())
		} else {
			ctx.CLIFormatter().Muted("Not installed")
		}
		return nil
	},
}

func init() {
	serviceCmd.AddCommand(serviceInstallCmd)
	serviceCmd.AddCommand(serviceUninstallCmd)
	serviceCmd.AddCommand(serviceStatusCmd)
	rootCmd.AddCommand(serviceCmd)
}

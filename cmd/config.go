package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/config"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"cfg", "settings"},
	Short:   "Manage application configuration",
	Long: `View and modify application configuration settings.

Settings are read from the config file and can be overridden with
HYDRATE_* environment variables, e.g. HYDRATE_INTERVAL_MINUTES=45.

Examples:
  hydrate config get
  hydrate config get interval_minutes
  hydrate config set interval_minutes 45
  hydrate config set store_path ~/water_intake_log.txt`,
}

// configGetCmd gets configuration values.
var configGetCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get configuration value",
	Long: `Show one configuration value, or all of them when KEY is omitted.

Keys:
  interval_minutes  Minutes between reminders
  store_path        Intake log file
  tick              How often the reminder loop checks the clock
  notifier          Prompt style: auto, terminal, dialog
  log_file          Rotating log file, empty to disable`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigGet,
}

// configSetCmd sets configuration values.
var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set configuration value",
	Long: `Validate VALUE and write it to the config file.

Examples:
  hydrate config set interval_minutes 45
  hydrate config set tick 5s
  hydrate config set notifier dialog
  hydrate config set log_file ~/.local/state/hydrate/hydrate.log`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeConfigKeys,
	RunE:              runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keys := config.SortedKeys()
	values := ctx.Settings.All()

	if len(args) == 1 {
		value, err := ctx.Settings.Get(args[0])
		if err != nil {
			return err
		}
		keys = []string{args[0]}
		values = map[string]string{args[0]: value}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintConfig(values, ctx.Settings.Path())
	}
	cli := ctx.CLIFormatter()
	cli.PrintConfig(keys, values, ctx.Settings.Path())
	if hint := logFileHint(values); hint != "" {
		cli.Muted(hint)
	}
	return nil
}

// logFileHint suggests a log location when file logging is off.
func logFileHint(values map[string]string) string {
	v, ok := values[config.KeyLogFile]
	if !ok || v != "" {
		return ""
	}
	return "File logging is off; enable with: hydrate config set log_file " + config.DefaultLogFile()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	// Values may contain spaces, e.g. paths.
	value := strings.Join(args[1:], " ")

	if err := ctx.Settings.Set(key, value); err != nil {
		return err
	}
	ctx.Logger.Info("config updated", "key", key, "path", ctx.Settings.Path())

	stored, err := ctx.Settings.Get(key)
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintConfig(map[string]string{key: stored}, ctx.Settings.Path())
	}
	ctx.CLIFormatter().Success("Set " + key + " = " + stored)
	return nil
}

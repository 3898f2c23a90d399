// Package cmd provides the CLI commands for hydrate.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/output"
	"github.com/manav03panchal/hydrate/internal/runtime"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/stats"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
	flagStore  string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// skipRuntime lists commands that run without loading config or the log.
var skipRuntime = map[string]bool{
	"completion": true,
	"help":       true,
	"version":    true,
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hydrate",
	Short: "Reminds you to drink water and keeps count",
	Long: `Hydrate periodically asks whether you drank water, records each
confirmed drink in a plain text log and shows how many you had per day.

Examples:
  hydrate                 show last drink and time until the next reminder
  hydrate run             start the reminder loop
  hydrate dashboard       live countdown with in-place prompt
  hydrate drink           record a drink now
  hydrate stats last week per-day counts`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipRuntime[cmd.Name()] {
			return nil
		}

		opts := runtime.DefaultOptions()
		opts.Format = output.ParseFormat(flagFormat)
		opts.ColorMode = output.ParseColorMode(flagColor)
		opts.Debug = flagDebug
		opts.ConfigPath = flagConfig
		opts.StorePath = flagStore

		var err error
		ctx, err = runtime.New(context.Background(), opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: runStatus,
}

// runStatus shows the last drink, today's count and the next reminder.
func runStatus(cmd *cobra.Command, args []string) error {
	events, err := ctx.Log.LoadAll()
	if err != nil {
		return err
	}

	now := time.Now()
	view := &output.StatusView{
		Now:             now,
		Today:           stats.Today(stats.CountsByDate(events), now),
		IntervalMinutes: ctx.Config.IntervalMinutes,
		StorePath:       ctx.Log.Path(),
	}

	machine, err := scheduler.NewMachine(ctx.Config.IntervalMinutes)
	if err != nil {
		return err
	}
	if len(events) > 0 {
		last := events[len(events)-1].Timestamp
		view.LastIntake = &last
		machine.Start(last, true)
	} else {
		machine.Start(time.Time{}, false)
	}
	view.Remaining = machine.Remaining(now)

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus(view)
	}
	ctx.CLIFormatter().PrintStatus(view)
	return nil
}

// Execute adds all child commands to the root command and runs it. Errors
// are printed here so they respect --format and --debug.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError prints err with a category and suggestion when one is known.
func reportError(err error) {
	if ctx != nil && ctx.IsJSON() {
		_ = ctx.JSONFormatter().PrintError(err.Error(), errors.Classify(err).String(), errors.GetSuggestion(err))
		return
	}

	if flagDebug {
		fmt.Fprintln(os.Stderr, errors.FormatDebugError(err))
		return
	}

	msg := "Error: " + errors.FormatByCategory(err)
	for _, ex := range errors.GetExamples(err) {
		msg += "\n  " + ex
	}
	fmt.Fprintln(os.Stderr, msg)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Config file (default $XDG_CONFIG_HOME/hydrate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "",
		"Intake log file (overrides store_path)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletions("cli", "json", "plain"))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletions("auto", "always", "never"))

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("hydrate %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

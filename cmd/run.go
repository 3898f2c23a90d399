package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/manav03panchal/hydrate/internal/config"
	"github.com/manav03panchal/hydrate/internal/daemon"
	"github.com/manav03panchal/hydrate/internal/errors"
	"github.com/manav03panchal/hydrate/internal/logging"
	"github.com/manav03panchal/hydrate/internal/notify"
	"github.com/manav03panchal/hydrate/internal/parser"
	"github.com/manav03panchal/hydrate/internal/scheduler"
	"github.com/manav03panchal/hydrate/internal/storage"
	"github.com/manav03panchal/hydrate/internal/validate"
)

// Run command flags.
var (
	runFlagTick     string
	runFlagNotifier string
	runFlagInterval string
	runFlagMetrics  string
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"start", "remind"},
	Short:   "Start the reminder loop",
	Long: `Start reminding you to drink water. On the first run you are asked
right away; afterwards you are asked once the interval has passed since
your last recorded drink.

Answers:
  I drank water   record the drink and restart the countdown
  Snooze          ask again one interval from now, nothing is recorded
  Exit            stop the loop

Examples:
  hydrate run
  hydrate run --interval 45
  hydrate run --interval 1h --notifier dialog
  hydrate run --metrics-addr 127.0.0.1:9464`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlagTick, "tick", "", "How often to check (default from config, 1s)")
	runCmd.Flags().StringVarP(&runFlagNotifier, "notifier", "n", "", "Prompt style: auto, terminal, dialog")
	runCmd.Flags().StringVarP(&runFlagInterval, "interval", "i", "", "Minutes between reminders (e.g. 45, 1h)")
	runCmd.Flags().StringVar(&runFlagMetrics, "metrics-addr", "", "Serve prometheus metrics on this address")

	_ = runCmd.RegisterFlagCompletionFunc("notifier", fixedCompletions(notify.Kinds...))

	rootCmd.AddCommand(runCmd)
}

// applyRunFlags folds command flags into the loaded configuration.
func applyRunFlags(cfg *config.Config, tick, kind, interval string) error {
	if interval != "" {
		minutes, err := parser.ParseIntervalMinutes(interval)
		if err != nil {
			return errors.NewValidationError(config.KeyIntervalMinutes, interval,
				"must be a positive whole number of minutes", errors.ErrInvalidInterval)
		}
		cfg.IntervalMinutes = minutes
	}
	if kind != "" {
		if err := notify.ValidateKind(kind); err != nil {
			return err
		}
		cfg.Notifier = kind
	}
	if tick != "" {
		d, err := parser.ParseDuration(tick, time.Second)
		if err != nil {
			return errors.NewValidationError(config.KeyTick, tick, "must be a duration such as 1s or 1m", err)
		}
		if err := validate.Tick(d); err != nil {
			return err
		}
		cfg.Tick = d
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := *ctx.Config
	if err := applyRunFlags(&cfg, runFlagTick, runFlagNotifier, runFlagInterval); err != nil {
		return err
	}

	lock := storage.NewFileLock(ctx.Log.Path())
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	notifier, err := notify.Select(cfg.Notifier, os.Stdin, os.Stderr)
	if err != nil {
		return err
	}

	logger := ctx.Logger
	metrics := daemon.NewMetrics()
	sched, err := scheduler.New(
		daemon.InstrumentStore(ctx.Log, metrics),
		daemon.InstrumentNotifier(notifier, metrics),
		scheduler.Options{IntervalMinutes: cfg.IntervalMinutes, Logger: logger},
	)
	if err != nil {
		return err
	}

	runner, err := scheduler.NewRunner(sched, cfg.Tick, logger)
	if err != nil {
		return err
	}

	if !ctx.IsJSON() {
		fmt.Fprintf(os.Stderr, "Reminding every %d minutes. Press Ctrl+C to stop.\n", cfg.IntervalMinutes)
	}
	logger.Info("reminder loop started",
		logging.KeyInterval, cfg.IntervalMinutes,
		logging.KeyStore, ctx.Log.Path(),
		"notifier", cfg.Notifier)

	var metricsLn net.Listener
	if runFlagMetrics != "" {
		metricsLn, err = net.Listen("tcp", runFlagMetrics)
		if err != nil {
			return errors.NewSystemErrorWithOp("metrics", "cannot listen on "+runFlagMetrics, err)
		}
	}

	runCtx, stop := daemon.WithShutdown(ctx.Session, logger)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	loopCtx, endLoop := context.WithCancel(gctx)
	defer endLoop()

	g.Go(func() error {
		// Exit ends the loop without an error; stop the metrics server too.
		defer endLoop()
		err := runner.Run(loopCtx)
		logger.Info("reminder loop stopped", metrics.LogValues()...)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	if metricsLn != nil {
		g.Go(func() error {
			return daemon.ServeMetrics(loopCtx, metricsLn, metrics, logger)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(metrics.Snapshot())
	}
	return nil
}

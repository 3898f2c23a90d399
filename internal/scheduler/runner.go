package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/hydrate/internal/logging"
	"github.com/manav03panchal/hydrate/internal/validate"
)

// DefaultTick is the evaluation cadence of the headless runner.
const DefaultTick = time.Second

// Runner drives a Scheduler from a cron schedule. Runs are chained with
// SkipIfStillRunning, so ticks that fire while a prompt is open are dropped.
type Runner struct {
	scheduler *Scheduler
	tick      time.Duration
	logger    *slog.Logger
	cronLog   cron.Logger
	cron      *cron.Cron
}

// NewRunner creates a runner evaluating s every tick.
func NewRunner(s *Scheduler, tick time.Duration, logger *slog.Logger) (*Runner, error) {
	if tick == 0 {
		tick = DefaultTick
	}
	if err := validate.Tick(tick); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Logger()
	}

	cronLog := logging.Cron(logger)
	return &Runner{
		scheduler: s,
		tick:      tick,
		logger:    logger.With("component", "runner"),
		cronLog:   cronLog,
		cron:      cron.New(cron.WithSeconds(), cron.WithLogger(cronLog)),
	}, nil
}

// Run feeds the cron schedule into Scheduler.Run. Ticks that fire while a
// prompt is open are dropped. It returns nil when the user exits, ctx.Err()
// when ctx is cancelled, or the first error that is not a storage write
// failure.
func (r *Runner) Run(ctx context.Context) error {
	ticks := make(chan time.Time)

	job := cron.NewChain(cron.Recover(r.cronLog), cron.SkipIfStillRunning(r.cronLog)).Then(
		cron.FuncJob(func() {
			select {
			case ticks <- time.Now():
			default:
			}
		}))

	r.cron.Schedule(cron.Every(r.tick), job)
	r.cron.Start()
	r.logger.Debug("runner started", "tick", r.tick)

	err := r.scheduler.Run(ctx, ticks)

	stopped := r.cron.Stop()
	<-stopped.Done()
	r.logger.Debug("runner stopped")
	return err
}

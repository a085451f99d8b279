package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultAutoConfirmSchedule runs the confirmation sweep every 15 minutes.
const DefaultAutoConfirmSchedule = "@every 15m"

type AutoConfirmHandler interface {
	Handle(ctx context.Context, cmd commands.AutoConfirmDeliveriesCommand) (commands.AutoConfirmResult, error)
}

// AutoConfirmJob confirms delivered orders the client left unconfirmed past
// the grace period.
type AutoConfirmJob struct {
	handler   AutoConfirmHandler
	schedule  string
	batchSize int
	clock     commands.Clock
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewAutoConfirmJob(handler AutoConfirmHandler, schedule string, clock commands.Clock, logger *slog.Logger) *AutoConfirmJob {
	if schedule == "" {
		schedule = DefaultAutoConfirmSchedule
	}
	if clock == nil {
		clock = commands.SystemClock
	}
	logger = logger.With("component", "auto_confirm_job")
	return &AutoConfirmJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: commands.DefaultAutoConfirmBatchSize,
		clock:     clock,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// Start registers the sweep and starts the timer.
func (j *AutoConfirmJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Auto-confirm job started", "schedule", j.schedule)
	return nil
}

// Stop halts the timer. The returned context is done once an in-flight run finishes.
func (j *AutoConfirmJob) Stop() context.Context {
	ctx := j.cron.Stop()
	j.logger.Info("Auto-confirm job stopped")
	return ctx
}

// Run performs one sweep at the current clock reading.
func (j *AutoConfirmJob) Run(ctx context.Context) {
	cmd, err := commands.NewAutoConfirmDeliveriesCommand(j.clock(), j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-confirm command rejected", "error", err)
		return
	}

	start := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrUnavailable):
		j.logger.WarnContext(ctx, "Auto-confirm skipped, store unavailable", "error", err)
		return
	case err != nil:
		j.logger.ErrorContext(ctx, "Auto-confirm job failed", "error", err)
		return
	}

	if result.Candidates > 0 {
		j.logger.InfoContext(ctx, "Auto-confirm sweep finished",
			"candidates", result.Candidates,
			"confirmed", result.Confirmed,
			"skipped", result.Skipped,
			"failed", result.Failed,
			"took", since(start),
		)
	}
}

// newCron builds a scheduler that survives panicking runs and never overlaps
// a run with its predecessor.
func newCron(logger *slog.Logger) *cron.Cron {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	return cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))
}

func since(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}

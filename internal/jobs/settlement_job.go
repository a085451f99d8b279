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

// DefaultSettlementSchedule runs the settlement sweep hourly.
const DefaultSettlementSchedule = "@every 1h"

type SettleCommissionsHandler interface {
	Handle(ctx context.Context, cmd commands.SettleCommissionsCommand) (int64, error)
}

// SettlementJob releases commissions older than the settlement grace for payout.
type SettlementJob struct {
	handler  SettleCommissionsHandler
	schedule string
	clock    commands.Clock
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSettlementJob(handler SettleCommissionsHandler, schedule string, clock commands.Clock, logger *slog.Logger) *SettlementJob {
	if schedule == "" {
		schedule = DefaultSettlementSchedule
	}
	if clock == nil {
		clock = commands.SystemClock
	}
	logger = logger.With("component", "settlement_job")
	return &SettlementJob{
		handler:  handler,
		schedule: schedule,
		clock:    clock,
		cron:     newCron(logger),
		logger:   logger,
	}
}

// Start registers the sweep and starts the timer.
func (j *SettlementJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("Settlement job started", "schedule", j.schedule)
	return nil
}

// Stop halts the timer. The returned context is done once an in-flight run finishes.
func (j *SettlementJob) Stop() context.Context {
	ctx := j.cron.Stop()
	j.logger.Info("Settlement job stopped")
	return ctx
}

// Run performs one sweep at the current clock reading.
func (j *SettlementJob) Run(ctx context.Context) {
	cmd, err := commands.NewSettleCommissionsCommand(j.clock())
	if err != nil {
		j.logger.ErrorContext(ctx, "Settlement command rejected", "error", err)
		return
	}

	start := time.Now()
	promoted, err := j.handler.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrUnavailable):
		j.logger.WarnContext(ctx, "Settlement skipped, store unavailable", "error", err)
		return
	case err != nil:
		j.logger.ErrorContext(ctx, "Settlement job failed", "error", err)
		return
	}

	if promoted > 0 {
		j.logger.InfoContext(ctx, "Commissions released for payout", "count", promoted, "took", since(start))
	}
}

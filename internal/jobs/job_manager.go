package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"
)

// Config selects the cron specs of the sweeps. Empty values fall back to the defaults.
type Config struct {
	AutoConfirmSchedule string
	SettlementSchedule  string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoConfirmJob *AutoConfirmJob
	settlementJob  *SettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	autoConfirmHandler AutoConfirmHandler,
	settleHandler SettleCommissionsHandler,
	cfg Config,
	clock commands.Clock,
	logger *slog.Logger,
) *JobManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobManager{
		autoConfirmJob: NewAutoConfirmJob(autoConfirmHandler, cfg.AutoConfirmSchedule, clock, logger),
		settlementJob:  NewSettlementJob(settleHandler, cfg.SettlementSchedule, clock, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoConfirmJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-confirm job: %w", err)
	}

	if err := jm.settlementJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		<-jm.autoConfirmJob.Stop().Done()
		return fmt.Errorf("failed to start settlement job: %w", err)
	}

	return nil
}

// StopAll stops both timers and waits for in-flight runs until ctx expires.
func (jm *JobManager) StopAll(ctx context.Context) error {
	for _, done := range []context.Context{jm.autoConfirmJob.Stop(), jm.settlementJob.Stop()} {
		select {
		case <-done.Done():
		case <-ctx.Done():
			return fmt.Errorf("jobs still running at shutdown: %w", ctx.Err())
		}
	}
	return nil
}

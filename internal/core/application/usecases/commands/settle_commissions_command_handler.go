package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/ports"
)

// SettleCommissionsCommandHandler promotes every commission older than the
// settlement window to ready_for_payout with one bulk conditional update.
//
// Re-running it is harmless: promoted rows no longer match the predicate. The
// downstream event is best effort; the payout initiator also polls.
type SettleCommissionsCommandHandler struct {
	uowFactory CommissionUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewSettleCommissionsCommandHandler(
	uowFactory CommissionUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) SettleCommissionsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SettleCommissionsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "settlement"),
	}
}

// Handle returns the number of promoted commissions.
func (h SettleCommissionsCommandHandler) Handle(ctx context.Context, cmd SettleCommissionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := commission.SettlementCutoff(cmd.At())
	promoted, err := uow.CommissionRepository().PromoteSettled(ctx, cutoff, cmd.At())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if promoted == 0 {
		return 0, nil
	}

	h.logger.Info("commissions settled", "count", promoted, "cutoff", cutoff)
	if h.publisher != nil {
		event := CommissionsReadyEvent{Count: promoted, Cutoff: cutoff, SettledAt: cmd.At()}
		if err = h.publisher.Publish(ctx, ports.RoutingKeyCommissionsReady, event); err != nil {
			h.logger.Warn("failed to publish settlement event", "count", promoted, "error", err)
		}
	}
	return promoted, nil
}

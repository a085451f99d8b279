package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
)

// AutoConfirmDeliveriesCommandHandler force-confirms delivered orders the client
// left unacknowledged for longer than order.ConfirmationGrace.
//
// Each order is confirmed in its own transaction with a compare-and-swap, so a
// client confirming at the same moment makes the sweep skip that order instead of
// confirming it twice. A failing order is logged and the sweep moves on.
type AutoConfirmDeliveriesCommandHandler struct {
	uowFactory LedgerUoWFactory
	engine     services.CommissionEngine
	logger     *slog.Logger
}

func NewAutoConfirmDeliveriesCommandHandler(uowFactory LedgerUoWFactory, logger *slog.Logger) AutoConfirmDeliveriesCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AutoConfirmDeliveriesCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewCommissionEngine(),
		logger:     logger.With("component", "auto-confirm"),
	}
}

func (h AutoConfirmDeliveriesCommandHandler) Handle(
	ctx context.Context,
	cmd AutoConfirmDeliveriesCommand,
) (AutoConfirmResult, error) {
	var result AutoConfirmResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	candidates, err := h.overdue(ctx, cmd)
	if err != nil {
		return result, err
	}
	result.Candidates = len(candidates)

	for _, id := range candidates {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		confirmed, confirmErr := h.confirmOne(ctx, id, cmd.At())
		switch {
		case confirmErr != nil:
			result.Failed++
			h.logger.Error("auto-confirm failed", "order_id", id.String(), "error", confirmErr)
		case confirmed:
			result.Confirmed++
		default:
			result.Skipped++
		}
	}

	return result, nil
}

func (h AutoConfirmDeliveriesCommandHandler) overdue(ctx context.Context, cmd AutoConfirmDeliveriesCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cutoff := cmd.At().Add(-order.ConfirmationGrace)
	orders, err := uow.OrderRepository().FindOverdueConfirmations(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids, nil
}

// confirmOne re-reads the order so the overdue predicate is evaluated on current state.
func (h AutoConfirmDeliveriesCommandHandler) confirmOne(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !o.IsConfirmationOverdue(at) {
		return false, nil
	}

	changed, err := o.ForceConfirm(at)
	if err != nil || !changed {
		return false, err
	}

	err = orderRepo.Update(ctx, o)
	if errors.Is(err, errs.ErrConflict) {
		h.logger.Debug("order changed during sweep, skipping", "order", o.FriendlyID())
		return false, nil
	}
	if err != nil {
		return false, err
	}

	set, _, err := ensureCommissions(ctx, uow.CommissionRepository(), h.engine, o, at)
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.logger.Info("delivery confirmed by system", "order", o.FriendlyID(), "commissions", len(set))
	return true, nil
}

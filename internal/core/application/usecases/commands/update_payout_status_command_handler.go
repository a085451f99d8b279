package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/commission"
)

// UpdatePayoutStatusCommandHandler moves one commission along the payout edges.
// When the last commission of an order is paid, the order is flagged disbursed
// in the same transaction.
type UpdatePayoutStatusCommandHandler struct {
	uowFactory LedgerUoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewUpdatePayoutStatusCommandHandler(
	uowFactory LedgerUoWFactory,
	clock Clock,
	logger *slog.Logger,
) UpdatePayoutStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return UpdatePayoutStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "payout-status"),
	}
}

func (h UpdatePayoutStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePayoutStatusCommand,
) (views.Commission, error) {
	if err := cmd.Validate(); err != nil {
		return views.Commission{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Commission{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock()
	commissionRepo := uow.CommissionRepository()

	c, err := commissionRepo.Get(ctx, cmd.CommissionID())
	if err != nil {
		return views.Commission{}, err
	}

	from := c.PayoutStatus()
	if err = c.ChangePayoutStatus(cmd.Status(), now); err != nil {
		return views.Commission{}, err
	}

	if err = commissionRepo.Update(ctx, c); err != nil {
		return views.Commission{}, err
	}

	disbursed := false
	if c.PayoutStatus() == commission.Paid {
		if disbursed, err = h.markDisbursedIfSettled(ctx, uow, c); err != nil {
			return views.Commission{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Commission{}, err
	}

	h.logger.Info("payout status changed",
		"commission_id", c.ID().String(), "from", from.String(), "to", c.PayoutStatus().String(),
		"order_disbursed", disbursed)
	return views.FromCommission(c), nil
}

// markDisbursedIfSettled flags the order once every commission of its set is
// paid. The order row is locked before the set is read: two payouts of the
// same order then run this one after the other, and the later one sees the
// earlier one's committed commission.
func (h UpdatePayoutStatusCommandHandler) markDisbursedIfSettled(
	ctx context.Context,
	uow LedgerUoW,
	paid *commission.Commission,
) (bool, error) {
	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, paid.OrderID())
	if err != nil {
		return false, err
	}
	if o.IsDisbursed() {
		return false, nil
	}

	set, err := uow.CommissionRepository().GetByOrder(ctx, paid.OrderID())
	if err != nil {
		return false, err
	}
	for i, c := range set {
		if c.ID().IsEqual(paid.ID()) {
			set[i] = paid
		}
	}
	if !commission.AllPaid(set) {
		return false, nil
	}

	if err = o.MarkDisbursed(paid.UpdatedAt()); err != nil {
		return false, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}
	return true, nil
}

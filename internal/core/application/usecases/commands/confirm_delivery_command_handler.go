package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler flips the confirmation flag and creates the
// commission set in the same transaction.
//
// Confirming an already confirmed order is a no-op that returns the order. When
// the confirmation loses the compare-and-swap (typically against the auto-confirm
// sweep), the order is re-read: if it is confirmed by then the call succeeds as a
// no-op, otherwise the conflict is returned.
type ConfirmDeliveryCommandHandler struct {
	uowFactory LedgerUoWFactory
	engine     services.CommissionEngine
	clock      Clock
	logger     *slog.Logger
}

func NewConfirmDeliveryCommandHandler(uowFactory LedgerUoWFactory, clock Clock, logger *slog.Logger) ConfirmDeliveryCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewCommissionEngine(),
		clock:      clock,
		logger:     logger.With("component", "confirm-delivery"),
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (views.Order, error) {
	if err := cmd.Validate(); err != nil {
		return views.Order{}, err
	}

	now := h.clock()
	o, err := h.confirm(ctx, cmd, now)
	if errors.Is(err, errs.ErrConflict) {
		return h.afterLostRace(ctx, cmd, now, err)
	}
	if err != nil {
		return views.Order{}, err
	}

	return views.FromOrder(o), nil
}

func (h ConfirmDeliveryCommandHandler) confirm(ctx context.Context, cmd ConfirmDeliveryCommand, now time.Time) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	changed, err := o.Confirm(cmd.Actor(), now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	set, _, err := ensureCommissions(ctx, uow.CommissionRepository(), h.engine, o, now)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("delivery confirmed",
		"order", o.FriendlyID(), "by", cmd.Actor().String(), "admin_confirmed", o.IsAdminConfirmed(),
		"commissions", len(set))
	return o, nil
}

func (h ConfirmDeliveryCommandHandler) afterLostRace(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
	now time.Time,
	conflict error,
) (views.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Order{}, conflict
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return views.Order{}, conflict
	}

	changed, err := current.Confirm(cmd.Actor(), now)
	if err != nil || changed {
		return views.Order{}, conflict
	}

	h.logger.Debug("confirmation already applied concurrently", "order", current.FriendlyID())
	return views.FromOrder(current), nil
}

package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/views"
	"laundry/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler applies one lifecycle transition.
//
// Participants are captured before the transition so that a cancellation, which
// releases the rider and partner, still reaches them.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notify     notifications
	clock      Clock
	logger     *slog.Logger
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	clock Clock,
	logger *slog.Logger,
) AdvanceOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notify:     newNotifications(notifier, logger),
		clock:      clock,
		logger:     logger.With("component", "advance-order-status"),
	}
}

func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (views.Order, error) {
	if err := cmd.Validate(); err != nil {
		return views.Order{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return views.Order{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	participants := participantsOf(o)
	from := o.Status()
	now := h.clock()

	if err = o.Advance(cmd.Status(), cmd.Actor(), now); err != nil {
		return views.Order{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return views.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.logger.Info("order status changed",
		"order", o.FriendlyID(), "from", from.String(), "to", o.Status().String(), "by", cmd.Actor().String())
	h.notify.statusChanged(o, participants, cmd.Actor(), now)

	return views.FromOrder(o), nil
}

package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// AssignOrderCommandHandler dispatches an order and notifies the bound actors.
//
// The order update is a compare-and-swap on the created status, so two admins
// assigning the same order concurrently cannot both win: the loser receives
// errs.ErrConflict. Push delivery happens after commit and never fails the command.
type AssignOrderCommandHandler struct {
	uowFactory DispatchUoWFactory
	dispatcher services.Dispatcher
	notify     notifications
	clock      Clock
	logger     *slog.Logger
}

func NewAssignOrderCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.Notifier,
	clock Clock,
	logger *slog.Logger,
) AssignOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDispatcher(),
		notify:     newNotifications(notifier, logger),
		clock:      clock,
		logger:     logger.With("component", "assign-order"),
	}
}

func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (views.Order, error) {
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
	providerRepo := uow.ProviderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	rider, err := providerRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return views.Order{}, err
	}

	partner, err := providerRepo.Get(ctx, cmd.PartnerID())
	if err != nil {
		return views.Order{}, err
	}

	if err = h.dispatcher.Dispatch(o, rider, partner, cmd.Actor(), h.clock()); err != nil {
		return views.Order{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return views.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.logger.Info("order assigned",
		"order", o.FriendlyID(), "rider_id", rider.ID().String(), "partner_id", partner.ID().String(),
		"by", cmd.Actor().String())
	h.notify.orderAssigned(o)

	return views.FromOrder(o), nil
}

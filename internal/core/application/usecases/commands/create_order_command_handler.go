package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/order"
)

// CreateOrderCommandHandler persists a new order in created status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock, logger *slog.Logger) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "create-order"),
	}
}

// Handle builds the aggregate and stores it in one transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (views.Order, error) {
	if err := cmd.Validate(); err != nil {
		return views.Order{}, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.ClientID(), cmd.Contact(), cmd.Items(), cmd.Pricing(), h.clock())
	if err != nil {
		return views.Order{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return views.Order{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return views.Order{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return views.Order{}, err
	}

	h.logger.Info("order created", "order", o.FriendlyID(), "client_id", o.ClientID().String(),
		"total", o.Pricing().TotalAmount().String())
	return views.FromOrder(o), nil
}

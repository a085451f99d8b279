package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/services"
)

// CreateOrderCommissionsCommandHandler returns the existing commission set of an
// order unchanged, or computes and stores it when none exists yet.
type CreateOrderCommissionsCommandHandler struct {
	uowFactory LedgerUoWFactory
	engine     services.CommissionEngine
	clock      Clock
	logger     *slog.Logger
}

func NewCreateOrderCommissionsCommandHandler(
	uowFactory LedgerUoWFactory,
	clock Clock,
	logger *slog.Logger,
) CreateOrderCommissionsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommissionsCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewCommissionEngine(),
		clock:      clock,
		logger:     logger.With("component", "order-commissions"),
	}
}

func (h CreateOrderCommissionsCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommissionsCommand,
) ([]views.Commission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	set, created, err := ensureCommissions(ctx, uow.CommissionRepository(), h.engine, o, h.clock())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if created {
		h.logger.Info("commissions created", "order", o.FriendlyID(), "count", len(set))
	}
	return views.FromCommissions(set), nil
}

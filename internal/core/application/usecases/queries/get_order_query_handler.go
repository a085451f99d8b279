package queries

import (
	"context"

	"laundry/internal/core/application/views"
	"laundry/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order and hides it from non-participants.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns errs.ErrForbidden when the actor takes no part in the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (views.Order, error) {
	if err := query.Validate(); err != nil {
		return views.Order{}, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return views.Order{}, err
	}

	if !o.CanBeViewedBy(query.Actor()) {
		return views.Order{}, errs.NewForbiddenError(query.Actor().String(), "view order "+o.FriendlyID())
	}

	return views.FromOrder(o), nil
}

package queries

import (
	"context"

	"laundry/internal/core/application/views"
)

type GetActiveOrdersQueryHandler struct {
	reader OrderReader
}

func NewGetActiveOrdersQueryHandler(reader OrderReader) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{reader: reader}
}

// Handle returns the actor's active orders, newest first. The slice is never nil.
func (h GetActiveOrdersQueryHandler) Handle(ctx context.Context, query GetActiveOrdersQuery) ([]views.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.reader.GetActiveFor(ctx, query.Actor())
	if err != nil {
		return nil, err
	}

	return views.FromOrders(orders), nil
}

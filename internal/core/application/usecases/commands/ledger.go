package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
)

// ensureCommissions returns the commission set of a confirmed order, creating
// it on the first call. created is false when the set already existed or a
// concurrent writer inserted it first.
func ensureCommissions(
	ctx context.Context,
	repo ports.CommissionRepository,
	engine services.CommissionEngine,
	o *order.Order,
	now time.Time,
) (set []*commission.Commission, created bool, err error) {
	existing, err := repo.GetByOrder(ctx, o.ID())
	if err != nil {
		return nil, false, err
	}
	if len(existing) > 0 {
		return existing, false, nil
	}

	set, err = engine.Split(o, now)
	if err != nil {
		return nil, false, err
	}

	inserted, err := repo.AddAll(ctx, set)
	if err != nil {
		return nil, false, err
	}
	if inserted == int64(len(set)) {
		return set, true, nil
	}

	current, err := repo.GetByOrder(ctx, o.ID())
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

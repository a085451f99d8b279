package queries

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

const (
	DefaultReadyCommissionsLimit = 100
	MaxReadyCommissionsLimit     = 1000
)

var ErrGetReadyCommissionsQueryIsNotConstructed = errors.New(
	"GetReadyCommissionsQuery must be created via NewGetReadyCommissionsQuery constructor",
)

// GetReadyCommissionsQuery is the payout initiator's poll for settled commissions.
type GetReadyCommissionsQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetReadyCommissionsQuery accepts admins only. A zero limit selects the default.
func NewGetReadyCommissionsQuery(actor kernel.Actor, limit int) (GetReadyCommissionsQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetReadyCommissionsQuery{}, err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return GetReadyCommissionsQuery{}, errs.NewForbiddenError(actor.String(), "list payable commissions")
	}
	if limit == 0 {
		limit = DefaultReadyCommissionsLimit
	}
	if limit < 0 || limit > MaxReadyCommissionsLimit {
		return GetReadyCommissionsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxReadyCommissionsLimit)
	}
	return GetReadyCommissionsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReadyCommissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyCommissionsQueryIsNotConstructed)
}

func (q GetReadyCommissionsQuery) Limit() int { return q.limit }

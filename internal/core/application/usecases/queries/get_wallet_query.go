package queries

import (
	"errors"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrGetWalletQueryIsNotConstructed = errors.New(
	"GetWalletQuery must be created via NewGetWalletQuery constructor",
)

// GetWalletQuery derives the balance of one beneficiary from the commission ledger.
//
// Example:
//
//	query, err := NewGetWalletQuery(actor, false) // the rider's or partner's own wallet
//	query, err := NewGetWalletQuery(admin, true)  // the platform wallet
type GetWalletQuery struct {
	beneficiary commission.Beneficiary
	guard       guard.ConstructorGuard
}

// NewGetWalletQuery resolves the wallet owner. Riders and partners read their own
// wallet; the platform wallet is reserved for admins.
func NewGetWalletQuery(actor kernel.Actor, platform bool) (GetWalletQuery, error) {
	if err := actor.Validate(); err != nil {
		return GetWalletQuery{}, err
	}

	if platform {
		if !actor.Is(kernel.RoleAdmin) {
			return GetWalletQuery{}, errs.NewForbiddenError(actor.String(), "read the platform wallet")
		}
		return GetWalletQuery{beneficiary: commission.PlatformBeneficiary(), guard: guard.NewConstructorGuard()}, nil
	}

	b, err := commission.BeneficiaryForActor(actor)
	if err != nil {
		return GetWalletQuery{}, err
	}
	return GetWalletQuery{beneficiary: b, guard: guard.NewConstructorGuard()}, nil
}

func (q GetWalletQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletQueryIsNotConstructed)
}

func (q GetWalletQuery) Beneficiary() commission.Beneficiary { return q.beneficiary }

package commands

import (
	"errors"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrUpdatePayoutStatusCommandIsNotConstructed = errors.New(
	"UpdatePayoutStatusCommand must be created via NewUpdatePayoutStatusCommand constructor",
)

// UpdatePayoutStatusCommand records progress reported by the payout initiator.
type UpdatePayoutStatusCommand struct {
	actor        kernel.Actor
	commissionID kernel.UUID
	status       commission.PayoutStatus

	guard guard.ConstructorGuard
}

func NewUpdatePayoutStatusCommand(
	actor kernel.Actor,
	commissionID kernel.UUID,
	status commission.PayoutStatus,
) (UpdatePayoutStatusCommand, error) {
	if err := errors.Join(actor.Validate(), commissionID.Validate(), status.Validate()); err != nil {
		return UpdatePayoutStatusCommand{}, err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return UpdatePayoutStatusCommand{}, errs.NewForbiddenError(actor.String(), "report payouts")
	}
	return UpdatePayoutStatusCommand{
		actor:        actor,
		commissionID: commissionID,
		status:       status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdatePayoutStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePayoutStatusCommandIsNotConstructed)
}

func (c UpdatePayoutStatusCommand) Actor() kernel.Actor             { return c.actor }
func (c UpdatePayoutStatusCommand) CommissionID() kernel.UUID       { return c.commissionID }
func (c UpdatePayoutStatusCommand) Status() commission.PayoutStatus { return c.status }

package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrSetProviderAvailabilityCommandIsNotConstructed = errors.New(
	"SetProviderAvailabilityCommand must be created via NewSetProviderAvailabilityCommand constructor",
)

// SetProviderAvailabilityCommand lets a rider or partner go on or off duty.
// Admins may toggle any provider.
type SetProviderAvailabilityCommand struct {
	providerID kernel.UUID
	available  bool

	guard guard.ConstructorGuard
}

func NewSetProviderAvailabilityCommand(
	actor kernel.Actor,
	providerID kernel.UUID,
	available bool,
) (SetProviderAvailabilityCommand, error) {
	if err := errors.Join(actor.Validate(), providerID.Validate()); err != nil {
		return SetProviderAvailabilityCommand{}, err
	}

	self := actor.ID().IsEqual(providerID) && (actor.Is(kernel.RoleRider) || actor.Is(kernel.RolePartner))
	if !self && !actor.Is(kernel.RoleAdmin) {
		return SetProviderAvailabilityCommand{}, errs.NewForbiddenError(actor.String(), "change another provider's availability")
	}

	return SetProviderAvailabilityCommand{
		providerID: providerID,
		available:  available,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SetProviderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetProviderAvailabilityCommandIsNotConstructed)
}

func (c SetProviderAvailabilityCommand) ProviderID() kernel.UUID { return c.providerID }
func (c SetProviderAvailabilityCommand) Available() bool         { return c.available }

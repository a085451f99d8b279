package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateOrderCommissionsCommandIsNotConstructed = errors.New(
	"CreateOrderCommissionsCommand must be created via NewCreateOrderCommissionsCommand constructor",
)

// CreateOrderCommissionsCommand (re)issues the commission set of a confirmed
// order. Confirmation already does this; admins use the command to repair an
// order whose set is missing. It is idempotent.
type CreateOrderCommissionsCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateOrderCommissionsCommand(actor kernel.Actor, orderID kernel.UUID) (CreateOrderCommissionsCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return CreateOrderCommissionsCommand{}, err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return CreateOrderCommissionsCommand{}, errs.NewForbiddenError(actor.String(), "issue commissions")
	}
	return CreateOrderCommissionsCommand{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateOrderCommissionsCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommissionsCommandIsNotConstructed)
}

func (c CreateOrderCommissionsCommand) Actor() kernel.Actor  { return c.actor }
func (c CreateOrderCommissionsCommand) OrderID() kernel.UUID { return c.orderID }

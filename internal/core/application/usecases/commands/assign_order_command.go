package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand binds a rider and a partner to a created order.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(admin, orderID, riderID, partnerID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // someone else dispatched it first
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	orderID   kernel.UUID
	riderID   kernel.UUID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(actor kernel.Actor, orderID, riderID, partnerID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		riderID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		actor:     actor,
		orderID:   orderID,
		riderID:   riderID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) Actor() kernel.Actor    { return c.actor }
func (c AssignOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AssignOrderCommand) RiderID() kernel.UUID   { return c.riderID }
func (c AssignOrderCommand) PartnerID() kernel.UUID { return c.partnerID }

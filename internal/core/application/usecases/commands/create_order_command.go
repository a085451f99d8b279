package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers an order with the pricing breakdown supplied by
// the catalog. Clients create orders for themselves; admins may create on behalf
// of any client.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, kernel.NewUUID(), actor.ID(), contact, items, pricing)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	orderID  kernel.UUID
	clientID kernel.UUID
	contact  order.Contact
	items    []order.Item
	pricing  order.Pricing

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request and the caller's right to place it.
func NewCreateOrderCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	clientID kernel.UUID,
	contact order.Contact,
	items []order.Item,
	pricing order.Pricing,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		actor.Validate(),
		orderID.Validate(),
		clientID.Validate(),
		contact.Validate(),
		pricing.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	if err := cmd.authorize(actor, clientID); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.actor = actor
	cmd.orderID = orderID
	cmd.clientID = clientID
	cmd.contact = contact
	cmd.items = append([]order.Item(nil), items...)
	cmd.pricing = pricing
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor    { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CreateOrderCommand) ClientID() kernel.UUID  { return c.clientID }
func (c CreateOrderCommand) Contact() order.Contact { return c.contact }
func (c CreateOrderCommand) Items() []order.Item    { return c.items }
func (c CreateOrderCommand) Pricing() order.Pricing { return c.pricing }

func (c *CreateOrderCommand) authorize(actor kernel.Actor, clientID kernel.UUID) error {
	switch {
	case actor.Is(kernel.RoleAdmin):
		return nil
	case actor.Is(kernel.RoleClient) && actor.ID().IsEqual(clientID):
		return nil
	default:
		return errs.NewForbiddenError(actor.String(), "create orders for "+clientID.String())
	}
}

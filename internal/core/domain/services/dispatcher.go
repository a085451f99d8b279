package services

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/provider"
)

// Dispatcher is a domain service that binds an order to a rider and a partner.
//
// Business rules:
//   - the order must still be in created status
//   - the rider must be an available rider, the partner an available partner
//   - only admins (or the system) dispatch
//
// Example usage:
//
//	dispatcher := services.NewDispatcher()
//	if err := dispatcher.Dispatch(o, rider, partner, admin, time.Now()); err != nil {
//	    return err
//	}
type Dispatcher struct{}

// NewDispatcher creates a new Dispatcher instance.
//
// Returns:
//   - Dispatcher: a stateless service, safe to share between handlers
func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// Dispatch validates both providers and assigns them to the order.
//
// Parameters:
//   - o: the order to bind; must be constructed and still in created status
//   - rider: the provider to carry the order, registered as a rider
//   - partner: the laundry that washes it, registered as a partner
//   - actor: the dispatching user; must hold the admin role
//   - now: stamped on the order and its audit entry
//
// Returns:
//   - error: the joined provider errors (wrong kind, unavailable), or the
//     order's assignment error: errs.ErrForbidden for non-admins,
//     errs.ErrConflict when already assigned, errs.ErrInvalidTransition past created
//
// The order is left untouched on any error.
func (d Dispatcher) Dispatch(
	o *order.Order,
	rider, partner *provider.Provider,
	actor kernel.Actor,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := errors.Join(
		rider.ValidateDispatchableAs(provider.KindRider),
		partner.ValidateDispatchableAs(provider.KindPartner),
	); err != nil {
		return err
	}

	return o.Assign(rider.ID(), partner.ID(), actor, now)
}

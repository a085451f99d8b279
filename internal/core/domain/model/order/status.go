package order

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (single forward path, no skipping, no going back):
//
//	Created -> Assigned -> OnMyWayToPick -> PickedUp -> DroppedAtLaundry
//	        -> Washing -> ReadyForPick -> OutForDelivery -> Delivered
//
//	any non-terminal status -> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status; the order waits for dispatch.
	Created

	// Assigned means a rider and a partner are bound to the order.
	Assigned

	// OnMyWayToPick means the rider is travelling to the client.
	OnMyWayToPick

	// PickedUp means the rider holds the laundry.
	PickedUp

	// DroppedAtLaundry means the partner received the laundry.
	DroppedAtLaundry

	// Washing means the partner is processing the laundry.
	Washing

	// ReadyForPick means the partner finished and waits for the rider.
	ReadyForPick

	// OutForDelivery means the rider is returning the laundry.
	OutForDelivery

	// Delivered is terminal for the lifecycle and opens the confirmation window.
	Delivered

	// Cancelled is terminal; bindings are released.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Created:          "created",
		Assigned:         "assigned",
		OnMyWayToPick:    "on_my_way_to_pick",
		PickedUp:         "picked_up",
		DroppedAtLaundry: "dropped_at_laundry",
		Washing:          "washing",
		ReadyForPick:     "ready_for_pick",
		OutForDelivery:   "out_for_delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// successors defines the single forward edge out of each non-terminal status.
func successors() map[Status]Status {
	return map[Status]Status{
		Created:          Assigned,
		Assigned:         OnMyWayToPick,
		OnMyWayToPick:    PickedUp,
		PickedUp:         DroppedAtLaundry,
		DroppedAtLaundry: Washing,
		Washing:          ReadyForPick,
		ReadyForPick:     OutForDelivery,
		OutForDelivery:   Delivered,
	}
}

// edgeDrivers names the non-admin role that owns each forward edge.
// Created -> Assigned is absent: only dispatch may take it.
func edgeDrivers() map[Status]kernel.Role {
	return map[Status]kernel.Role{
		OnMyWayToPick:    kernel.RoleRider,
		PickedUp:         kernel.RoleRider,
		DroppedAtLaundry: kernel.RoleRider,
		Washing:          kernel.RolePartner,
		ReadyForPick:     kernel.RolePartner,
		OutForDelivery:   kernel.RoleRider,
		Delivered:        kernel.RoleRider,
	}
}

// ParseStatus converts the wire/storage name of a status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used on the wire and in storage.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the single defined successor of s.
func (s Status) Next() (Status, bool) {
	next, ok := successors()[s]
	return next, ok
}

// ValidateTransition checks that to is the defined successor of s, or
// Cancelled from a non-terminal status.
func (s Status) ValidateTransition(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if to == Cancelled && !s.IsTerminal() && s != Unknown {
		return nil
	}
	if next, ok := s.Next(); ok && next == to {
		return nil
	}
	return errs.NewInvalidTransitionError(s.String(), to.String())
}

// AuthorizeTransition checks that role may drive the edge s -> to.
// Admins may drive every edge except Created -> Assigned, which belongs to dispatch.
// Clients may only cancel an order that has not been picked up.
func (s Status) AuthorizeTransition(to Status, role kernel.Role) error {
	if to == Cancelled {
		switch {
		case role == kernel.RoleAdmin:
			return nil
		case role == kernel.RoleClient && (s == Created || s == Assigned):
			return nil
		default:
			return errs.NewForbiddenError(role.String(), fmt.Sprintf("cancel an order in %s", s))
		}
	}

	driver, ok := edgeDrivers()[to]
	if !ok {
		return errs.NewForbiddenError(role.String(), fmt.Sprintf("move order to %s outside dispatch", to))
	}
	if role == kernel.RoleAdmin || role == driver {
		return nil
	}
	return errs.NewForbiddenError(role.String(), fmt.Sprintf("move order to %s", to))
}

package ports

import (
	"laundry/internal/core/domain/model/kernel"
)

// Push channel event names.
const (
	EventNewOrder          = "new_order"
	EventOrderAssigned     = "order_assigned"
	EventOrderStatusUpdate = "order_status_update"
)

// Notifier pushes events to live actor connections. Delivery is best effort and
// at most once: callers log a returned error and never fail their operation on it.
type Notifier interface {
	// EmitToUser delivers to every live connection of the actor and reports how
	// many connections accepted the event.
	EmitToUser(actorID kernel.UUID, event string, payload any) (int, error)

	// EmitToRole delivers to every live connection of every actor with the role.
	EmitToRole(role kernel.Role, event string, payload any) (int, error)
}

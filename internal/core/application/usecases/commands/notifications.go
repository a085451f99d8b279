package commands

import (
	"log/slog"
	"time"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// notifications fans committed changes out to live connections. Every failure
// is logged and dropped: the order state is already durable and clients can
// re-read it.
type notifications struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newNotifications(notifier ports.Notifier, logger *slog.Logger) notifications {
	if logger == nil {
		logger = slog.Default()
	}
	return notifications{notifier: notifier, logger: logger.With("component", "notifications")}
}

// orderAssigned sends new_order to the bound rider and partner and
// order_assigned to every admin session.
func (n notifications) orderAssigned(o *order.Order) {
	if n.notifier == nil {
		return
	}
	payload := views.OrderPayload{Order: views.FromOrder(o)}

	for _, id := range []*kernel.UUID{o.Rider(), o.Partner()} {
		if id == nil {
			continue
		}
		n.toUser(*id, ports.EventNewOrder, payload, o)
	}
	n.toRole(kernel.RoleAdmin, ports.EventOrderAssigned, payload, o)
}

// statusChanged sends order_status_update to the given participants and to admins.
func (n notifications) statusChanged(o *order.Order, participants []kernel.UUID, actor kernel.Actor, at time.Time) {
	if n.notifier == nil {
		return
	}
	payload := views.StatusUpdatePayload{
		OrderID:    o.ID(),
		FriendlyID: o.FriendlyID(),
		Status:     o.Status().String(),
		UpdatedBy:  actor.ID(),
		Role:       actor.Role(),
		Timestamp:  at,
	}

	for _, id := range participants {
		n.toUser(id, ports.EventOrderStatusUpdate, payload, o)
	}
	n.toRole(kernel.RoleAdmin, ports.EventOrderStatusUpdate, payload, o)
}

func (n notifications) toUser(id kernel.UUID, event string, payload any, o *order.Order) {
	delivered, err := n.notifier.EmitToUser(id, event, payload)
	if err != nil {
		n.logger.Warn("push to user failed",
			"event", event, "order", o.FriendlyID(), "actor_id", id.String(), "delivered", delivered, "error", err)
		return
	}
	n.logger.Debug("pushed to user", "event", event, "order", o.FriendlyID(), "actor_id", id.String(), "delivered", delivered)
}

func (n notifications) toRole(role kernel.Role, event string, payload any, o *order.Order) {
	delivered, err := n.notifier.EmitToRole(role, event, payload)
	if err != nil {
		n.logger.Warn("push to role failed",
			"event", event, "order", o.FriendlyID(), "role", role.String(), "delivered", delivered, "error", err)
		return
	}
	n.logger.Debug("pushed to role", "event", event, "order", o.FriendlyID(), "role", role.String(), "delivered", delivered)
}

// participantsOf lists the client, rider and partner currently bound to o.
func participantsOf(o *order.Order) []kernel.UUID {
	ids := []kernel.UUID{o.ClientID()}
	if o.Rider() != nil {
		ids = append(ids, *o.Rider())
	}
	if o.Partner() != nil {
		ids = append(ids, *o.Partner())
	}
	return ids
}

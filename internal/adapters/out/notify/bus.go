package notify

import (
	"errors"
	"fmt"
	"log/slog"

	"laundry/internal/core/domain/model/kernel"
)

// Bus implements ports.Notifier over a Directory. Each connection gets at most
// one attempt per event; a failing connection is left for its reader loop to
// unregister.
type Bus struct {
	directory *Directory
	logger    *slog.Logger
}

func NewBus(directory *Directory, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{directory: directory, logger: logger.With("component", "notify-bus")}
}

// EmitToUser sends to every live connection of the actor.
func (b *Bus) EmitToUser(actorID kernel.UUID, event string, payload any) (int, error) {
	return b.fanOut(b.directory.ForActor(actorID), event, payload)
}

// EmitToRole sends to every live connection held by an actor with the role.
func (b *Bus) EmitToRole(role kernel.Role, event string, payload any) (int, error) {
	return b.fanOut(b.directory.ForRole(role), event, payload)
}

func (b *Bus) fanOut(conns []Conn, event string, payload any) (int, error) {
	delivered := 0
	var sendErrs []error
	for _, c := range conns {
		if err := c.Send(event, payload); err != nil {
			sendErrs = append(sendErrs, fmt.Errorf("connection %s: %w", c.ID(), err))
			continue
		}
		delivered++
	}

	if len(sendErrs) > 0 {
		b.logger.Debug("push partially failed", "event", event, "delivered", delivered, "failed", len(sendErrs))
	}
	return delivered, errors.Join(sendErrs...)
}

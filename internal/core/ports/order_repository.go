// Package ports defines the contracts between the laundry core and its adapters:
// persistence, the live notification channel and the integration event bus.
package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its pending audit entries.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a mutated order with a compare-and-swap on the status and
	// version the aggregate was loaded with. A lost race returns errs.ErrConflict,
	// a missing row errs.ErrObjectNotFound. Pending audit entries are written in
	// the same transaction.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the unit of work
	// ends. Writers that decide on state spread over several aggregates use it
	// to serialize on the order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveFor returns the non-archived orders the actor participates in
	// (every non-archived order for admins), newest first.
	GetActiveFor(ctx context.Context, actor kernel.Actor) ([]*order.Order, error)

	// FindOverdueConfirmations returns delivered, unconfirmed orders whose last
	// update is strictly older than cutoff, oldest first, at most limit orders.
	// Rows that cannot be restored are skipped rather than failing the batch.
	FindOverdueConfirmations(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}

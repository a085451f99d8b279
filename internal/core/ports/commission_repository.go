package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
)

// CommissionRepository defines the persistence contract for the commission ledger.
type CommissionRepository interface {
	// AddAll inserts the commission set of one order. Rows whose (order,
	// beneficiary kind) already exists are skipped; the number of inserted rows
	// is returned so callers can detect a concurrent writer and re-read.
	AddAll(ctx context.Context, set []*commission.Commission) (int64, error)

	// Get retrieves one commission.
	Get(ctx context.Context, id kernel.UUID) (*commission.Commission, error)

	// GetByOrder returns the commission set of an order, empty when none exists.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Commission, error)

	// Update persists a payout status change with a compare-and-swap on the
	// status the commission was loaded with.
	Update(ctx context.Context, c *commission.Commission) error

	// PromoteSettled moves every pending_settlement commission created at or
	// before cutoff to ready_for_payout in one statement and reports how many
	// rows it promoted.
	PromoteSettled(ctx context.Context, cutoff, now time.Time) (int64, error)
}

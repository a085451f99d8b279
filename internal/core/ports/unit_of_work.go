package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command. Instances are not
// shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a command. An order transition,
// the commissions it produces and any provider change commit or roll back together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	// Rollback after Commit changes nothing, so handlers may always defer it.
	Rollback(ctx context.Context) error

	// Repositories use the transaction opened by Begin, or the plain
	// connection when none is open.
	OrderRepository() OrderRepository
	CommissionRepository() CommissionRepository
	ProviderRepository() ProviderRepository
}

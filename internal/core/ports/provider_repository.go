package ports

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/provider"
)

// ProviderRepository reads and stores rider and partner profiles.
type ProviderRepository interface {
	Add(ctx context.Context, p *provider.Provider) error
	Update(ctx context.Context, p *provider.Provider) error
	Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error)
}

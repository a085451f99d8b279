// Package providerrepo persists rider and partner profiles.
package providerrepo

import (
	"context"
	"time"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/provider"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"type:varchar(16);index"`
	Name      string    `gorm:"type:varchar(128)"`
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProviderDTO) TableName() string {
	return "providers"
}

// GormProviderRepository implements ports.ProviderRepository using GORM.
type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// Add registers a profile. Registering the same id twice is a conflict.
func (r *GormProviderRepository) Add(ctx context.Context, p *provider.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := ProviderDTO{ID: p.ID().Bytes(), Kind: string(p.Kind()), Name: p.Name(), Available: p.IsAvailable()}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate("provider", p.ID().String(), err)
	}
	return nil
}

func (r *GormProviderRepository) Update(ctx context.Context, p *provider.Provider) error {
	if err := p.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProviderDTO{}).
		Where("id = ?", p.ID().Bytes()).
		Updates(map[string]any{"name": p.Name(), "available": p.IsAvailable()})
	if result.Error != nil {
		return pgerr.Translate("provider", p.ID().String(), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("provider", p.ID().String())
	}
	return nil
}

func (r *GormProviderRepository) Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProviderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("provider", id.String(), err)
	}

	kind, err := provider.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	return provider.NewProvider(id, kind, dto.Name, dto.Available)
}

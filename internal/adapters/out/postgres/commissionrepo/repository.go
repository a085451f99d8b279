package commissionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laundry/internal/adapters/out/postgres/pgerr"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommissionRepository implements ports.CommissionRepository using GORM.
type GormCommissionRepository struct {
	db *gorm.DB
}

func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// AddAll inserts the set with ON CONFLICT DO NOTHING so a concurrent writer that
// already created the set does not abort the surrounding transaction.
func (r *GormCommissionRepository) AddAll(ctx context.Context, set []*commission.Commission) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}

	dtos := make([]CommissionDTO, 0, len(set))
	for _, c := range set {
		if err := c.Validate(); err != nil {
			return 0, err
		}
		dtos = append(dtos, fromDomain(c))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos)
	if result.Error != nil {
		return 0, pgerr.Translate("commissions", set[0].OrderID().String(), result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormCommissionRepository) Get(ctx context.Context, id kernel.UUID) (*commission.Commission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CommissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Translate("commission", id.String(), err)
	}
	return toDomain(dto)
}

// GetByOrder returns the set ordered rider, partner, platform.
func (r *GormCommissionRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Commission, error) {
	var dtos []CommissionDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE beneficiary_kind WHEN ? THEN 0 WHEN ? THEN 1 ELSE 2 END",
			Vars:               []any{string(commission.BeneficiaryRider), string(commission.BeneficiaryPartner)},
			WithoutParentheses: true,
		}}).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate("commissions", orderID.String(), err)
	}

	set := make([]*commission.Commission, 0, len(dtos))
	var restoreErrs []error
	for _, dto := range dtos {
		c, restoreErr := toDomain(dto)
		if restoreErr != nil {
			restoreErrs = append(restoreErrs, restoreErr)
			continue
		}
		set = append(set, c)
	}
	if err = errors.Join(restoreErrs...); err != nil {
		return nil, err
	}
	return set, nil
}

// Update writes the payout status only if the row still holds the status the
// commission was loaded with.
func (r *GormCommissionRepository) Update(ctx context.Context, c *commission.Commission) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&CommissionDTO{}).
		Where("id = ? AND payout_status = ?", c.ID().Bytes(), c.ExpectedPayoutStatus().String()).
		Updates(map[string]any{
			"payout_status": c.PayoutStatus().String(),
			"updated_at":    c.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Translate("commission", c.ID().String(), result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&CommissionDTO{}).Where("id = ?", c.ID().Bytes()).Count(&count).Error; err != nil {
		return pgerr.Translate("commission", c.ID().String(), err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("commission", c.ID().String())
	}
	return errs.NewConflictErrorWithCause("commission "+c.ID().String(),
		fmt.Errorf("payout status is no longer %s", c.ExpectedPayoutStatus()))
}

// PromoteSettled releases every pending_settlement commission created at or
// before cutoff in a single statement.
func (r *GormCommissionRepository) PromoteSettled(ctx context.Context, cutoff, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&CommissionDTO{}).
		Where("payout_status = ? AND created_at <= ?", commission.PendingSettlement.String(), cutoff).
		Updates(map[string]any{
			"payout_status": commission.ReadyForPayout.String(),
			"updated_at":    now,
		})
	if result.Error != nil {
		return 0, pgerr.Translate("commissions", "settlement", result.Error)
	}
	return result.RowsAffected, nil
}

// Package commissionrepo persists the commission ledger.
package commissionrepo

import (
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CommissionDTO is one ledger row. The unique index on (order_id,
// beneficiary_kind) makes a second commission set for an order impossible.
type CommissionDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:ux_commissions_order_beneficiary,priority:1"`
	BeneficiaryKind string     `gorm:"type:varchar(16);uniqueIndex:ux_commissions_order_beneficiary,priority:2;index:ix_commissions_wallet,priority:1"`
	BeneficiaryID   *uuid.UUID `gorm:"type:uuid;index:ix_commissions_wallet,priority:2"`
	Amount          int64
	PayoutStatus    string    `gorm:"type:varchar(32);index:ix_commissions_settlement,priority:1"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index:ix_commissions_settlement,priority:2"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (CommissionDTO) TableName() string {
	return "commissions"
}

func fromDomain(c *commission.Commission) CommissionDTO {
	var beneficiaryID *uuid.UUID
	if id := c.Beneficiary().ID(); id != nil {
		raw := id.Bytes()
		beneficiaryID = &raw
	}

	return CommissionDTO{
		ID:              c.ID().Bytes(),
		OrderID:         c.OrderID().Bytes(),
		BeneficiaryKind: string(c.Beneficiary().Kind()),
		BeneficiaryID:   beneficiaryID,
		Amount:          c.Amount().MinorUnits(),
		PayoutStatus:    c.PayoutStatus().String(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func toDomain(dto CommissionDTO) (*commission.Commission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var beneficiaryID *kernel.UUID
	if dto.BeneficiaryID != nil {
		bID, idErr := kernel.UUIDFromBytes(dto.BeneficiaryID[:])
		if idErr != nil {
			return nil, idErr
		}
		beneficiaryID = &bID
	}

	kind, err := commission.ParseBeneficiaryKind(dto.BeneficiaryKind)
	if err != nil {
		return nil, err
	}
	beneficiary, err := commission.RestoreBeneficiary(kind, beneficiaryID)
	if err != nil {
		return nil, err
	}

	status, err := commission.ParsePayoutStatus(dto.PayoutStatus)
	if err != nil {
		return nil, err
	}

	return commission.Restore(id, orderID, beneficiary, kernel.Money(dto.Amount), status,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

package queries

import (
	"context"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReadyCommissionsQueryHandler lists ready_for_payout commissions oldest first.
type GetReadyCommissionsQueryHandler struct {
	db *gorm.DB
}

func NewGetReadyCommissionsQueryHandler(db *gorm.DB) GetReadyCommissionsQueryHandler {
	return GetReadyCommissionsQueryHandler{db: db}
}

func (h GetReadyCommissionsQueryHandler) Handle(
	ctx context.Context,
	query GetReadyCommissionsQuery,
) ([]views.Commission, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	result := make([]views.Commission, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			beneficiary_kind,
			beneficiary_id,
			amount,
			payout_status,
			created_at,
			updated_at
		FROM commissions
		WHERE payout_status = ?
		ORDER BY created_at, id
		LIMIT ?
	`, commission.ReadyForPayout.String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c views.Commission
		var id, orderID uuid.UUID
		var beneficiaryID *uuid.UUID

		err = rows.Scan(
			&id,
			&orderID,
			&c.BeneficiaryKind,
			&beneficiaryID,
			&c.Amount,
			&c.PayoutStatus,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if c.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if c.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if beneficiaryID != nil {
			bID, idErr := kernel.UUIDFromBytes(beneficiaryID[:])
			if idErr != nil {
				return nil, idErr
			}
			c.BeneficiaryID = &bID
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

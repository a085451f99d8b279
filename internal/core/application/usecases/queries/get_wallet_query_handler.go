package queries

import (
	"context"

	"laundry/internal/core/application/views"
	"laundry/internal/core/domain/model/commission"

	"gorm.io/gorm"
)

// GetWalletQueryHandler sums the ledger directly in SQL; wallets are never stored.
type GetWalletQueryHandler struct {
	db *gorm.DB
}

func NewGetWalletQueryHandler(db *gorm.DB) GetWalletQueryHandler {
	return GetWalletQueryHandler{db: db}
}

// Handle returns totalEarned over every commission of the beneficiary and
// pendingBalance over the ones not yet paid out or failed.
func (h GetWalletQueryHandler) Handle(ctx context.Context, query GetWalletQuery) (views.Wallet, error) {
	if err := query.Validate(); err != nil {
		return views.Wallet{}, err
	}

	b := query.Beneficiary()
	pending := []string{
		commission.PendingSettlement.String(),
		commission.ReadyForPayout.String(),
		commission.Processing.String(),
	}

	sql := `
		SELECT
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(amount) FILTER (WHERE payout_status IN ?), 0)
		FROM commissions
		WHERE beneficiary_kind = ?`
	args := []any{pending, string(b.Kind())}
	if id := b.ID(); id != nil {
		sql += ` AND beneficiary_id = ?`
		args = append(args, id.Bytes())
	} else {
		sql += ` AND beneficiary_id IS NULL`
	}

	var total, pendingBalance int64
	row := h.db.WithContext(ctx).Raw(sql, args...).Row()
	if err := row.Scan(&total, &pendingBalance); err != nil {
		return views.Wallet{}, err
	}

	return views.Wallet{
		Beneficiary:    b.String(),
		TotalEarned:    total,
		PendingBalance: pendingBalance,
	}, nil
}

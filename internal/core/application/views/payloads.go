package views

import (
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
)

// OrderPayload is the body of new_order and order_assigned.
type OrderPayload struct {
	Order Order `json:"order"`
}

// StatusUpdatePayload is the body of order_status_update.
type StatusUpdatePayload struct {
	OrderID    kernel.UUID `json:"orderId"`
	FriendlyID string      `json:"friendlyId"`
	Status     string      `json:"status"`
	UpdatedBy  kernel.UUID `json:"updatedBy"`
	Role       kernel.Role `json:"role"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Wallet is the derived balance of one beneficiary.
type Wallet struct {
	Beneficiary    string `json:"beneficiary"`
	TotalEarned    int64  `json:"totalEarned"`
	PendingBalance int64  `json:"pendingBalance"`
}

// Commission is one ledger entry as exposed to the payout initiator.
type Commission struct {
	ID              kernel.UUID  `json:"id"`
	OrderID         kernel.UUID  `json:"orderId"`
	BeneficiaryKind string       `json:"beneficiaryKind"`
	BeneficiaryID   *kernel.UUID `json:"beneficiaryId,omitempty"`
	Amount          int64        `json:"amount"`
	PayoutStatus    string       `json:"payoutStatus"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// FromCommission renders a ledger entry.
func FromCommission(c *commission.Commission) Commission {
	return Commission{
		ID:              c.ID(),
		OrderID:         c.OrderID(),
		BeneficiaryKind: string(c.Beneficiary().Kind()),
		BeneficiaryID:   c.Beneficiary().ID(),
		Amount:          c.Amount().MinorUnits(),
		PayoutStatus:    c.PayoutStatus().String(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

// FromCommissions renders a set, never nil.
func FromCommissions(set []*commission.Commission) []Commission {
	out := make([]Commission, 0, len(set))
	for _, c := range set {
		out = append(out, FromCommission(c))
	}
	return out
}

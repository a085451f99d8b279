package commission

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// SettlementGrace is the T+1 window a commission waits before it becomes payable.
const SettlementGrace = 24 * time.Hour

var ErrCommissionIsNotConstructed = errors.New("Commission must be created via NewCommission constructor")

// Commission is one ledger entry: a beneficiary's earned share of one order.
// Commissions are never deleted; paid and failed are terminal for the ledger
// (failed may be retried by the payout subsystem).
type Commission struct {
	id                   kernel.UUID
	orderID              kernel.UUID
	beneficiary          Beneficiary
	amount               kernel.Money
	payoutStatus         PayoutStatus
	expectedPayoutStatus PayoutStatus
	createdAt            time.Time
	updatedAt            time.Time
	guard                guard.ConstructorGuard
}

// NewCommission creates a pending_settlement entry.
func NewCommission(id, orderID kernel.UUID, beneficiary Beneficiary, amount kernel.Money, now time.Time) (*Commission, error) {
	return build(id, orderID, beneficiary, amount, PendingSettlement, now, now)
}

// Restore rebuilds a commission loaded from storage.
func Restore(
	id, orderID kernel.UUID,
	beneficiary Beneficiary,
	amount kernel.Money,
	status PayoutStatus,
	createdAt, updatedAt time.Time,
) (*Commission, error) {
	return build(id, orderID, beneficiary, amount, status, createdAt, updatedAt)
}

func build(
	id, orderID kernel.UUID,
	beneficiary Beneficiary,
	amount kernel.Money,
	status PayoutStatus,
	createdAt, updatedAt time.Time,
) (*Commission, error) {
	var amountErr error
	if amount.IsNegative() {
		amountErr = errs.NewValueIsInvalidErrorWithCause("commission amount", fmt.Errorf("%s is negative", amount))
	}
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		beneficiary.Validate(),
		amountErr,
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Commission{
		id:                   id,
		orderID:              orderID,
		beneficiary:          beneficiary,
		amount:               amount,
		payoutStatus:         status,
		expectedPayoutStatus: status,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c *Commission) Validate() error {
	if c == nil {
		return ErrCommissionIsNotConstructed
	}
	return c.guard.Validate(ErrCommissionIsNotConstructed)
}

func (c *Commission) ID() kernel.UUID                    { return c.id }
func (c *Commission) OrderID() kernel.UUID               { return c.orderID }
func (c *Commission) Beneficiary() Beneficiary           { return c.beneficiary }
func (c *Commission) Amount() kernel.Money               { return c.amount }
func (c *Commission) PayoutStatus() PayoutStatus         { return c.payoutStatus }
func (c *Commission) ExpectedPayoutStatus() PayoutStatus { return c.expectedPayoutStatus }
func (c *Commission) CreatedAt() time.Time               { return c.createdAt }
func (c *Commission) UpdatedAt() time.Time               { return c.updatedAt }

// IsSettleable reports whether the settlement sweep would promote the commission at now.
func (c *Commission) IsSettleable(now time.Time) bool {
	return c.payoutStatus == PendingSettlement && !c.createdAt.After(now.Add(-SettlementGrace))
}

// ChangePayoutStatus applies a payout-subsystem transition. Moving a
// pending_settlement commission is refused: only settlement may release it.
func (c *Commission) ChangePayoutStatus(to PayoutStatus, now time.Time) error {
	if c.payoutStatus == PendingSettlement {
		return errs.NewInvalidStateError("commission", "is still inside the settlement window")
	}
	if err := c.payoutStatus.ValidateTransition(to); err != nil {
		return err
	}
	c.payoutStatus = to
	c.updatedAt = now
	return nil
}

// SettlementCutoff is the newest createdAt a commission may have to be promoted at now.
func SettlementCutoff(now time.Time) time.Time {
	return now.Add(-SettlementGrace)
}

// Total sums the amounts of a commission set.
func Total(set []*Commission) kernel.Money {
	var total kernel.Money
	for _, c := range set {
		total = total.Add(c.amount)
	}
	return total
}

// AllPaid reports whether every commission of the set is paid.
func AllPaid(set []*Commission) bool {
	if len(set) == 0 {
		return false
	}
	for _, c := range set {
		if c.payoutStatus != Paid {
			return false
		}
	}
	return true
}

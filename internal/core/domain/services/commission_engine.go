package services

import (
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// CommissionEngine computes the three shares a confirmed order pays out.
//
// Shares:
//   - rider: delivery fee
//   - partner: items subtotal minus the platform commission embedded in item prices
//   - platform: service fee + system fee + the embedded item commission
//
// The shares add up to the order total; the pricing tolerance of one minor unit
// is absorbed by the platform share.
type CommissionEngine struct {
	newID func() kernel.UUID
}

// NewCommissionEngine creates an engine that draws commission ids from kernel.NewUUID.
//
// Returns:
//   - CommissionEngine: a stateless service, safe to share between handlers
func NewCommissionEngine() CommissionEngine {
	return CommissionEngine{newID: kernel.NewUUID}
}

// Split computes the commission set of a confirmed order.
//
// Parameters:
//   - o: the order; must be confirmed with both a rider and a partner bound
//   - now: creation time of every commission, which starts the settlement window
//
// Returns:
//   - []*commission.Commission: rider, partner and platform shares, in that
//     order, each in pending_settlement
//   - error: errs.ErrInvalidState while the order is unconfirmed or unbound, or
//     a value error if a share comes out negative
//
// Split does not persist anything and does not check whether the order already
// has a set; callers own that idempotency.
func (e CommissionEngine) Split(o *order.Order, now time.Time) ([]*commission.Commission, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if !o.IsConfirmedByClient() {
		return nil, errs.NewInvalidStateError("order "+o.FriendlyID(), "is not confirmed")
	}
	if o.Rider() == nil || o.Partner() == nil {
		return nil, errs.NewInvalidStateError("order "+o.FriendlyID(), "has no rider or partner bound")
	}

	p := o.Pricing()
	embedded := o.ItemsPlatformCommission()

	riderShare := p.DeliveryFee()
	partnerShare := p.ItemsSubtotal().Sub(embedded)
	platformShare := p.ServiceFee().Add(p.SystemFee()).Add(embedded)

	residue := p.TotalAmount().Sub(riderShare.Add(partnerShare).Add(platformShare))
	if adjusted := platformShare.Add(residue); !adjusted.IsNegative() {
		platformShare = adjusted
	}

	shares := []struct {
		beneficiary commission.Beneficiary
		amount      kernel.Money
	}{
		{commission.RiderBeneficiary(*o.Rider()), riderShare},
		{commission.PartnerBeneficiary(*o.Partner()), partnerShare},
		{commission.PlatformBeneficiary(), platformShare},
	}

	set := make([]*commission.Commission, 0, len(shares))
	for _, s := range shares {
		c, err := commission.NewCommission(e.id(), o.ID(), s.beneficiary, s.amount, now)
		if err != nil {
			return nil, err
		}
		set = append(set, c)
	}
	return set, nil
}

func (e CommissionEngine) id() kernel.UUID {
	if e.newID == nil {
		return kernel.NewUUID()
	}
	return e.newID()
}

package commission

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// PayoutStatus tracks a commission from creation to money movement.
//
//	pending_settlement -> ready_for_payout -> processing -> paid
//	                                              |  ^
//	                                              v  |
//	                                             failed
//
// The settlement sweep owns the first edge; the payout subsystem owns the rest.
// A failed payout may be retried by moving it back to processing.
type PayoutStatus string

const (
	PendingSettlement PayoutStatus = "pending_settlement"
	ReadyForPayout    PayoutStatus = "ready_for_payout"
	Processing        PayoutStatus = "processing"
	Paid              PayoutStatus = "paid"
	Failed            PayoutStatus = "failed"
)

func payoutEdges() map[PayoutStatus][]PayoutStatus {
	return map[PayoutStatus][]PayoutStatus{
		PendingSettlement: {ReadyForPayout},
		ReadyForPayout:    {Processing},
		Processing:        {Paid, Failed},
		Failed:            {Processing},
	}
}

// ParsePayoutStatus converts the wire/storage name of a payout status.
func ParsePayoutStatus(s string) (PayoutStatus, error) {
	status := PayoutStatus(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s PayoutStatus) Validate() error {
	switch s {
	case PendingSettlement, ReadyForPayout, Processing, Paid, Failed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payout status", fmt.Errorf("%q is not a valid payout status", string(s)))
	}
}

func (s PayoutStatus) String() string {
	return string(s)
}

// CountsAsPending reports whether the amount still belongs to a wallet's pending balance.
func (s PayoutStatus) CountsAsPending() bool {
	return s == PendingSettlement || s == ReadyForPayout || s == Processing
}

// ValidateTransition checks the edge s -> to.
func (s PayoutStatus) ValidateTransition(to PayoutStatus) error {
	if err := to.Validate(); err != nil {
		return err
	}
	for _, next := range payoutEdges()[s] {
		if next == to {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(s.String(), to.String())
}

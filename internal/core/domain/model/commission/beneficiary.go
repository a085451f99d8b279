package commission

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// BeneficiaryKind names who earns a share of an order.
type BeneficiaryKind string

const (
	BeneficiaryRider    BeneficiaryKind = "rider"
	BeneficiaryPartner  BeneficiaryKind = "partner"
	BeneficiaryPlatform BeneficiaryKind = "platform"
)

// ParseBeneficiaryKind converts a stored kind, rejecting unknown values with
// errs.ErrValueIsInvalid.
func ParseBeneficiaryKind(s string) (BeneficiaryKind, error) {
	switch k := BeneficiaryKind(s); k {
	case BeneficiaryRider, BeneficiaryPartner, BeneficiaryPlatform:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("beneficiary kind", fmt.Errorf("%q is not a valid kind", s))
	}
}

// Beneficiary is the receiver of a commission. The platform has no actor id.
type Beneficiary struct {
	kind BeneficiaryKind
	id   *kernel.UUID
}

// RiderBeneficiary credits the rider identified by id, the same id the rider's
// tokens carry.
func RiderBeneficiary(id kernel.UUID) Beneficiary {
	return Beneficiary{kind: BeneficiaryRider, id: &id}
}

// PartnerBeneficiary credits the laundry partner identified by id.
func PartnerBeneficiary(id kernel.UUID) Beneficiary {
	return Beneficiary{kind: BeneficiaryPartner, id: &id}
}

// PlatformBeneficiary credits the marketplace itself. It carries no id, and
// every platform commission lands in the one platform wallet.
func PlatformBeneficiary() Beneficiary {
	return Beneficiary{kind: BeneficiaryPlatform}
}

// RestoreBeneficiary rebuilds a beneficiary from storage.
func RestoreBeneficiary(kind BeneficiaryKind, id *kernel.UUID) (Beneficiary, error) {
	b := Beneficiary{kind: kind, id: id}
	if err := b.Validate(); err != nil {
		return Beneficiary{}, err
	}
	return b, nil
}

// BeneficiaryForActor maps a rider or partner actor to its wallet owner.
func BeneficiaryForActor(actor kernel.Actor) (Beneficiary, error) {
	switch actor.Role() {
	case kernel.RoleRider:
		return RiderBeneficiary(actor.ID()), nil
	case kernel.RolePartner:
		return PartnerBeneficiary(actor.ID()), nil
	default:
		return Beneficiary{}, errs.NewForbiddenError(actor.Role().String(), "own a wallet")
	}
}

// Validate requires an id for riders and partners and none for the platform.
func (b Beneficiary) Validate() error {
	switch b.kind {
	case BeneficiaryRider, BeneficiaryPartner:
		if b.id == nil {
			return errs.NewValueIsRequiredError(string(b.kind) + " beneficiary id")
		}
		return b.id.Validate()
	case BeneficiaryPlatform:
		if b.id != nil {
			return errs.NewValueIsInvalidErrorWithCause("beneficiary id", fmt.Errorf("platform has no id"))
		}
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("beneficiary kind", fmt.Errorf("%q is not a valid kind", string(b.kind)))
	}
}

func (b Beneficiary) Kind() BeneficiaryKind { return b.kind }
func (b Beneficiary) ID() *kernel.UUID      { return b.id }

func (b Beneficiary) String() string {
	if b.id == nil {
		return string(b.kind)
	}
	return fmt.Sprintf("%s:%s", b.kind, b.id)
}

package kernel

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// MinorUnitsPerCedi is the number of pesewas in one cedi.
const MinorUnitsPerCedi = 100

// Money is an amount in minor currency units (pesewas). All ledger arithmetic
// is integral, so commission shares never accumulate floating point drift.
type Money int64

// NewMoney validates that an amount is non-negative.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", minorUnits),
		)
	}
	return Money(minorUnits), nil
}

// Cedis builds an amount from whole cedis.
func Cedis(whole int64) Money {
	return Money(whole * MinorUnitsPerCedi)
}

// MinorUnits returns the raw pesewa amount.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Mul returns m multiplied by a quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// WithinOneMinorUnit reports whether m and other differ by at most one pesewa.
func (m Money) WithinOneMinorUnit(other Money) bool {
	diff := m - other
	return diff >= -1 && diff <= 1
}

// String formats the amount as "GHS 12.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("GHS %s%d.%02d", sign, v/MinorUnitsPerCedi, v%MinorUnitsPerCedi)
}

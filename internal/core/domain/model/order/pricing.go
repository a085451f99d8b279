package order

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var (
	ErrPricingIsNotConstructed = errors.New("Pricing must be created via NewPricing constructor")
	ErrItemIsNotConstructed    = errors.New("Item must be created via NewItem constructor")
)

// Item is one priced catalog line of an order. PlatformCommission is the
// per-unit platform cut already embedded in UnitPrice by the catalog.
type Item struct {
	name               string
	quantity           int
	unitPrice          kernel.Money
	platformCommission kernel.Money
	guard              guard.ConstructorGuard
}

// NewItem validates a catalog line.
func NewItem(name string, quantity int, unitPrice, platformCommission kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	var nameErr, qtyErr, priceErr, commissionErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPrice.IsNegative() {
		priceErr = errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice))
	}
	if platformCommission.IsNegative() || platformCommission > unitPrice {
		commissionErr = errs.NewValueIsOutOfRangeError("platform commission", platformCommission, kernel.Money(0), unitPrice)
	}
	if err := errors.Join(nameErr, qtyErr, priceErr, commissionErr); err != nil {
		return Item{}, err
	}

	item.name = name
	item.quantity = quantity
	item.unitPrice = unitPrice
	item.platformCommission = platformCommission
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Name() string                     { return i.name }
func (i Item) Quantity() int                    { return i.quantity }
func (i Item) UnitPrice() kernel.Money          { return i.unitPrice }
func (i Item) PlatformCommission() kernel.Money { return i.platformCommission }

// LineTotal is UnitPrice x Quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

// LineCommission is PlatformCommission x Quantity.
func (i Item) LineCommission() kernel.Money {
	return i.platformCommission.Mul(i.quantity)
}

// Pricing is the authoritative breakdown supplied by the catalog at order creation.
// It is stored as-is and never recomputed.
type Pricing struct {
	itemsSubtotal kernel.Money
	serviceFee    kernel.Money
	deliveryFee   kernel.Money
	systemFee     kernel.Money
	totalAmount   kernel.Money
	guard         guard.ConstructorGuard
}

// NewPricing validates a breakdown: every field is mandatory and non-negative and
// totalAmount must equal the sum of the parts within one minor unit.
func NewPricing(itemsSubtotal, serviceFee, deliveryFee, systemFee, totalAmount kernel.Money) (Pricing, error) {
	var fieldErrs []error
	for name, v := range map[string]kernel.Money{
		"items subtotal": itemsSubtotal,
		"service fee":    serviceFee,
		"delivery fee":   deliveryFee,
		"system fee":     systemFee,
		"total amount":   totalAmount,
	} {
		if v.IsNegative() {
			fieldErrs = append(fieldErrs, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v)))
		}
	}
	if err := errors.Join(fieldErrs...); err != nil {
		return Pricing{}, err
	}

	sum := itemsSubtotal.Add(serviceFee).Add(deliveryFee).Add(systemFee)
	if !sum.WithinOneMinorUnit(totalAmount) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"total amount",
			fmt.Errorf("%s does not match the sum of its parts %s", totalAmount, sum),
		)
	}

	return Pricing{
		itemsSubtotal: itemsSubtotal,
		serviceFee:    serviceFee,
		deliveryFee:   deliveryFee,
		systemFee:     systemFee,
		totalAmount:   totalAmount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

func (p Pricing) ItemsSubtotal() kernel.Money { return p.itemsSubtotal }
func (p Pricing) ServiceFee() kernel.Money    { return p.serviceFee }
func (p Pricing) DeliveryFee() kernel.Money   { return p.deliveryFee }
func (p Pricing) SystemFee() kernel.Money     { return p.systemFee }
func (p Pricing) TotalAmount() kernel.Money   { return p.totalAmount }

// Package views holds the read models the core hands to its inbound adapters:
// order snapshots for HTTP responses and push channel payloads.
// Money amounts are integral pesewas.
package views

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

type Contact struct {
	Phone     string  `json:"phone"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type Item struct {
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unitPrice"`
	PlatformCommission int64  `json:"platformCommission"`
}

type Pricing struct {
	ItemsSubtotal int64 `json:"itemsSubtotal"`
	ServiceFee    int64 `json:"serviceFee"`
	DeliveryFee   int64 `json:"deliveryFee"`
	SystemFee     int64 `json:"systemFee"`
	TotalAmount   int64 `json:"totalAmount"`
}

// Order is the externally visible snapshot of an order.
type Order struct {
	ID                  kernel.UUID  `json:"id"`
	FriendlyID          string       `json:"friendlyId"`
	Status              string       `json:"status"`
	ClientID            kernel.UUID  `json:"clientId"`
	Client              Contact      `json:"client"`
	Items               []Item       `json:"items"`
	Pricing             Pricing      `json:"pricing"`
	RiderID             *kernel.UUID `json:"riderId,omitempty"`
	PartnerID           *kernel.UUID `json:"partnerId,omitempty"`
	IsConfirmedByClient bool         `json:"isConfirmedByClient"`
	IsAdminConfirmed    bool         `json:"isAdminConfirmed"`
	IsDisbursed         bool         `json:"isDisbursed"`
	DeliveredAt         *time.Time   `json:"deliveredAt,omitempty"`
	ConfirmedAt         *time.Time   `json:"confirmedAt,omitempty"`
	ArchivedAt          *time.Time   `json:"archivedAt,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// FromOrder renders an aggregate.
func FromOrder(o *order.Order) Order {
	p := o.Pricing()
	loc := o.Contact().Location

	items := make([]Item, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, Item{
			Name:               it.Name(),
			Quantity:           it.Quantity(),
			UnitPrice:          it.UnitPrice().MinorUnits(),
			PlatformCommission: it.PlatformCommission().MinorUnits(),
		})
	}

	return Order{
		ID:         o.ID(),
		FriendlyID: o.FriendlyID(),
		Status:     o.Status().String(),
		ClientID:   o.ClientID(),
		Client: Contact{
			Phone:     o.Contact().Phone,
			Address:   loc.Address(),
			Latitude:  loc.Latitude(),
			Longitude: loc.Longitude(),
		},
		Items: items,
		Pricing: Pricing{
			ItemsSubtotal: p.ItemsSubtotal().MinorUnits(),
			ServiceFee:    p.ServiceFee().MinorUnits(),
			DeliveryFee:   p.DeliveryFee().MinorUnits(),
			SystemFee:     p.SystemFee().MinorUnits(),
			TotalAmount:   p.TotalAmount().MinorUnits(),
		},
		RiderID:             o.Rider(),
		PartnerID:           o.Partner(),
		IsConfirmedByClient: o.IsConfirmedByClient(),
		IsAdminConfirmed:    o.IsAdminConfirmed(),
		IsDisbursed:         o.IsDisbursed(),
		DeliveredAt:         o.DeliveredAt(),
		ConfirmedAt:         o.ConfirmedAt(),
		ArchivedAt:          o.ArchivedAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

// FromOrders renders a list, never nil.
func FromOrders(orders []*order.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}

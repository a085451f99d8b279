package services_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

// referenceOrder is the 68 cedi order: items 50, service 5, delivery 10, system 3.
func referenceOrder(t *testing.T, items []order.Item, pricing order.Pricing) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation("14 Oxford St, Osu", 5.556, -0.1826)
	require.NoError(t, err)
	if items == nil {
		shirt, err := order.NewItem("shirt", 2, kernel.Cedis(25), 0)
		require.NoError(t, err)
		items = []order.Item{shirt}
	}
	if pricing == (order.Pricing{}) {
		pricing, err = order.NewPricing(kernel.Cedis(50), kernel.Cedis(5), kernel.Cedis(10), kernel.Cedis(3), kernel.Cedis(68))
		require.NoError(t, err)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		order.Contact{Phone: "+233201234567", Location: loc}, items, pricing, t0)
	require.NoError(t, err)
	return o
}

// confirmed restores o as delivered and confirmed by its client.
func confirmed(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	rider, partner := kernel.NewUUID(), kernel.NewUUID()
	at := t0.Add(3 * time.Hour)
	restored, err := order.Restore(order.Snapshot{
		ID:                  o.ID(),
		FriendlyID:          o.FriendlyID(),
		ClientID:            o.ClientID(),
		Contact:             o.Contact(),
		Items:               o.Items(),
		Pricing:             o.Pricing(),
		RiderID:             &rider,
		PartnerID:           &partner,
		Status:              order.Delivered,
		IsConfirmedByClient: true,
		DeliveredAt:         &at,
		ConfirmedAt:         &at,
		ArchivedAt:          &at,
		CreatedAt:           t0,
		UpdatedAt:           at,
		Version:             11,
	})
	require.NoError(t, err)
	return restored
}

package queries_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) GetActiveFor(ctx context.Context, actor kernel.Actor) ([]*order.Order, error) {
	args := m.Called(ctx, actor)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func mustActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func newOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation("14 Oxford St, Osu", 5.556, -0.1826)
	require.NoError(t, err)
	shirt, err := order.NewItem("shirt", 2, kernel.Cedis(25), 0)
	require.NoError(t, err)
	pricing, err := order.NewPricing(kernel.Cedis(50), kernel.Cedis(5), kernel.Cedis(10), kernel.Cedis(3), kernel.Cedis(68))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), clientID,
		order.Contact{Phone: "+233201234567", Location: loc}, []order.Item{shirt}, pricing, t0)
	require.NoError(t, err)
	return o
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	clientID := kernel.NewUUID()
	o := newOrder(t, clientID)

	tests := []struct {
		name      string
		actor     kernel.Actor
		forbidden bool
	}{
		{"owning client", mustActor(t, clientID, kernel.RoleClient), false},
		{"admin", mustActor(t, kernel.NewUUID(), kernel.RoleAdmin), false},
		{"another client", mustActor(t, kernel.NewUUID(), kernel.RoleClient), true},
		{"unbound rider", mustActor(t, kernel.NewUUID(), kernel.RoleRider), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := new(MockOrderReader)
			reader.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()

			query, err := queries.NewGetOrderQuery(tt.actor, o.ID())
			require.NoError(t, err)

			view, err := queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

			if tt.forbidden {
				require.ErrorIs(t, err, errs.ErrForbidden)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, o.FriendlyID(), view.FriendlyID)
			assert.Equal(t, int64(6800), view.Pricing.TotalAmount)
		})
	}

	t.Run("missing order", func(t *testing.T) {
		id := kernel.NewUUID()
		reader := new(MockOrderReader)
		reader.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetOrderQuery(mustActor(t, kernel.NewUUID(), kernel.RoleAdmin), id)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unconstructed query", func(t *testing.T) {
		_, err := queries.NewGetOrderQueryHandler(new(MockOrderReader)).Handle(t.Context(), queries.GetOrderQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetActiveOrdersQueryHandler_Handle(t *testing.T) {
	client := mustActor(t, kernel.NewUUID(), kernel.RoleClient)
	orders := []*order.Order{newOrder(t, client.ID()), newOrder(t, client.ID())}

	reader := new(MockOrderReader)
	reader.On("GetActiveFor", mock.Anything, client).Return(orders, nil).Once()

	query, err := queries.NewGetActiveOrdersQuery(client)
	require.NoError(t, err)

	views, err := queries.NewGetActiveOrdersQueryHandler(reader).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.Len(t, views, 2)
	reader.AssertExpectations(t)
}

func TestNewGetWalletQuery(t *testing.T) {
	t.Run("rider reads own wallet", func(t *testing.T) {
		rider := mustActor(t, kernel.NewUUID(), kernel.RoleRider)

		query, err := queries.NewGetWalletQuery(rider, false)

		require.NoError(t, err)
		assert.Equal(t, rider.ID(), *query.Beneficiary().ID())
	})

	t.Run("clients have no wallet", func(t *testing.T) {
		_, err := queries.NewGetWalletQuery(mustActor(t, kernel.NewUUID(), kernel.RoleClient), false)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("platform wallet is admin only", func(t *testing.T) {
		_, err := queries.NewGetWalletQuery(mustActor(t, kernel.NewUUID(), kernel.RolePartner), true)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestNewGetReadyCommissionsQuery(t *testing.T) {
	admin := mustActor(t, kernel.NewUUID(), kernel.RoleAdmin)

	query, err := queries.NewGetReadyCommissionsQuery(admin, 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultReadyCommissionsLimit, query.Limit())

	_, err = queries.NewGetReadyCommissionsQuery(admin, queries.MaxReadyCommissionsLimit+1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetReadyCommissionsQuery(mustActor(t, kernel.NewUUID(), kernel.RoleRider), 10)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

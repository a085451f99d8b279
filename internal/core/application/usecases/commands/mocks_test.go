package commands_test

import (
	"context"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/provider"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) commands.Clock {
	return func() time.Time { return at }
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetActiveFor(ctx context.Context, actor kernel.Actor) ([]*order.Order, error) {
	args := m.Called(ctx, actor)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindOverdueConfirmations(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCommissionRepository struct{ mock.Mock }

func (m *MockCommissionRepository) AddAll(ctx context.Context, set []*commission.Commission) (int64, error) {
	args := m.Called(ctx, set)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommissionRepository) Get(ctx context.Context, id kernel.UUID) (*commission.Commission, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*commission.Commission)
	return c, args.Error(1)
}

func (m *MockCommissionRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*commission.Commission, error) {
	args := m.Called(ctx, orderID)
	if fn, ok := args.Get(0).(func(kernel.UUID) []*commission.Commission); ok {
		return fn(orderID), args.Error(1)
	}
	set, _ := args.Get(0).([]*commission.Commission)
	return set, args.Error(1)
}

func (m *MockCommissionRepository) Update(ctx context.Context, c *commission.Commission) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCommissionRepository) PromoteSettled(ctx context.Context, cutoff, now time.Time) (int64, error) {
	args := m.Called(ctx, cutoff, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockProviderRepository struct{ mock.Mock }

func (m *MockProviderRepository) Add(ctx context.Context, p *provider.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProviderRepository) Update(ctx context.Context, p *provider.Provider) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProviderRepository) Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*provider.Provider)
	return p, args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct {
	mock.Mock
	orders      *MockOrderRepository
	commissions *MockCommissionRepository
	providers   *MockProviderRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		commissions: new(MockCommissionRepository),
		providers:   new(MockProviderRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) CommissionRepository() ports.CommissionRepository { return m.commissions }
func (m *MockUoW) ProviderRepository() ports.ProviderRepository     { return m.providers }

// expectTx registers a transaction that begins, commits (when commit is true) and
// is always rolled back by the deferred cleanup.
func (m *MockUoW) expectTx(commit bool) {
	m.On("Begin", mock.Anything).Return(nil)
	if commit {
		m.On("Commit", mock.Anything).Return(nil)
	}
	m.On("Rollback", mock.Anything).Return(nil)
}

func (m *MockUoW) assertAll(t *testing.T) {
	t.Helper()
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.commissions.AssertExpectations(t)
	m.providers.AssertExpectations(t)
}

type orderFactory func() commands.OrderUoW

func (f orderFactory) Create() commands.OrderUoW { return f() }

type dispatchFactory func() commands.DispatchUoW

func (f dispatchFactory) Create() commands.DispatchUoW { return f() }

type ledgerFactory func() commands.LedgerUoW

func (f ledgerFactory) Create() commands.LedgerUoW { return f() }

type commissionFactory func() commands.CommissionUoW

func (f commissionFactory) Create() commands.CommissionUoW { return f() }

type providerFactory func() commands.ProviderUoW

func (f providerFactory) Create() commands.ProviderUoW { return f() }

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) EmitToUser(actorID kernel.UUID, event string, payload any) (int, error) {
	args := m.Called(actorID, event, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockNotifier) EmitToRole(role kernel.Role, event string, payload any) (int, error) {
	args := m.Called(role, event, payload)
	return args.Int(0), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func mustActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

type orderState struct {
	id        kernel.UUID
	status    order.Status
	clientID  kernel.UUID
	riderID   *kernel.UUID
	partnerID *kernel.UUID
	confirmed bool
	updatedAt time.Time
}

// restoreOrder builds the 68 cedi reference order in an arbitrary state.
func restoreOrder(t *testing.T, s orderState) *order.Order {
	t.Helper()
	loc, err := kernel.NewLocation("14 Oxford St, Osu", 5.556, -0.1826)
	require.NoError(t, err)
	shirt, err := order.NewItem("shirt", 2, kernel.Cedis(25), 0)
	require.NoError(t, err)
	pricing, err := order.NewPricing(kernel.Cedis(50), kernel.Cedis(5), kernel.Cedis(10), kernel.Cedis(3), kernel.Cedis(68))
	require.NoError(t, err)

	id := s.id
	if id == (kernel.UUID{}) {
		id = kernel.NewUUID()
	}
	if s.clientID == (kernel.UUID{}) {
		s.clientID = kernel.NewUUID()
	}
	if s.updatedAt.IsZero() {
		s.updatedAt = t0
	}
	if s.status != order.Created && s.status != order.Cancelled && s.riderID == nil {
		rider, partner := kernel.NewUUID(), kernel.NewUUID()
		s.riderID, s.partnerID = &rider, &partner
	}
	var deliveredAt *time.Time
	if s.status == order.Delivered {
		at := s.updatedAt
		deliveredAt = &at
	}

	o, err := order.Restore(order.Snapshot{
		ID:                  id,
		FriendlyID:          order.FriendlyIDFor(id),
		ClientID:            s.clientID,
		Contact:             order.Contact{Phone: "+233201234567", Location: loc},
		Items:               []order.Item{shirt},
		Pricing:             pricing,
		RiderID:             s.riderID,
		PartnerID:           s.partnerID,
		Status:              s.status,
		IsConfirmedByClient: s.confirmed,
		DeliveredAt:         deliveredAt,
		CreatedAt:           t0.Add(-5 * time.Hour),
		UpdatedAt:           s.updatedAt,
		Version:             3,
	})
	require.NoError(t, err)
	return o
}

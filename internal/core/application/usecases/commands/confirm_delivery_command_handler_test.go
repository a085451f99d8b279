package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sequence hands out the given units of work one per Create call.
func sequence(uows ...*MockUoW) ledgerFactory {
	i := 0
	return func() commands.LedgerUoW {
		uow := uows[i]
		if i < len(uows)-1 {
			i++
		}
		return uow
	}
}

func TestConfirmDeliveryCommandHandler_Handle(t *testing.T) {
	later := t0.Add(30 * time.Minute)

	t.Run("client confirms and the three commissions are created", func(t *testing.T) {
		client := mustActor(t, kernel.RoleClient)
		o := restoreOrder(t, orderState{status: order.Delivered, clientID: client.ID()})

		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(nil, nil).Once()

		var stored []*commission.Commission
		uow.commissions.On("AddAll", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).([]*commission.Commission) }).
			Return(int64(3), nil).Once()

		cmd, err := commands.NewConfirmDeliveryCommand(client, o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmDeliveryCommandHandler(sequence(uow), fixedClock(later), nil)

		view, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, view.IsConfirmedByClient)
		assert.False(t, view.IsAdminConfirmed)
		require.Len(t, stored, 3)
		assert.Equal(t, kernel.Cedis(68), commission.Total(stored))
		for _, c := range stored {
			assert.Equal(t, commission.PendingSettlement, c.PayoutStatus())
		}
		uow.assertAll(t)
	})

	t.Run("repeated confirmation is a no-op", func(t *testing.T) {
		client := mustActor(t, kernel.RoleClient)
		o := restoreOrder(t, orderState{status: order.Delivered, clientID: client.ID(), confirmed: true})

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		cmd, err := commands.NewConfirmDeliveryCommand(client, o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmDeliveryCommandHandler(sequence(uow), fixedClock(later), nil)

		view, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, view.IsConfirmedByClient)
		uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.commissions.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	})

	t.Run("losing the race to the sweep returns the confirmed order", func(t *testing.T) {
		client := mustActor(t, kernel.RoleClient)
		stale := restoreOrder(t, orderState{status: order.Delivered, clientID: client.ID()})
		fresh, err := order.Restore(order.Snapshot{
			ID: stale.ID(), FriendlyID: stale.FriendlyID(), ClientID: client.ID(), Contact: stale.Contact(),
			Items: stale.Items(), Pricing: stale.Pricing(), RiderID: stale.Rider(), PartnerID: stale.Partner(),
			Status: order.Delivered, IsConfirmedByClient: true, IsAdminConfirmed: true,
			DeliveredAt: stale.DeliveredAt(), CreatedAt: stale.CreatedAt(), UpdatedAt: later, Version: 4,
		})
		require.NoError(t, err)

		first := newMockUoW()
		first.expectTx(false)
		first.orders.On("Get", mock.Anything, stale.ID()).Return(stale, nil).Once()
		first.orders.On("Update", mock.Anything, stale).Return(errs.NewConflictError("order")).Once()

		second := newMockUoW()
		second.expectTx(false)
		second.orders.On("Get", mock.Anything, stale.ID()).Return(fresh, nil).Once()

		cmd, err := commands.NewConfirmDeliveryCommand(client, stale.ID())
		require.NoError(t, err)
		h := commands.NewConfirmDeliveryCommandHandler(sequence(first, second), fixedClock(later), nil)

		view, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, view.IsConfirmedByClient)
		assert.True(t, view.IsAdminConfirmed)
		first.assertAll(t)
		second.assertAll(t)
	})

	t.Run("losing the race to another change keeps the conflict", func(t *testing.T) {
		client := mustActor(t, kernel.RoleClient)
		o := restoreOrder(t, orderState{status: order.Delivered, clientID: client.ID()})
		reloaded := restoreOrder(t, orderState{status: order.Delivered, clientID: client.ID()})

		first := newMockUoW()
		first.expectTx(false)
		first.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		first.orders.On("Update", mock.Anything, o).Return(errs.NewConflictError("order")).Once()

		second := newMockUoW()
		second.expectTx(false)
		second.orders.On("Get", mock.Anything, o.ID()).Return(reloaded, nil).Once()

		cmd, err := commands.NewConfirmDeliveryCommand(client, o.ID())
		require.NoError(t, err)
		h := commands.NewConfirmDeliveryCommandHandler(sequence(first, second), fixedClock(later), nil)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("orders that are not delivered cannot be confirmed", func(t *testing.T) {
		client := mustActor(t, kernel.RoleClient)
		o := restoreOrder(t, orderState{status: order.OutForDelivery, clientID: client.ID()})

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		cmd, err := commands.NewConfirmDeliveryCommand(client, o.ID())
		require.NoError(t, err)

		_, err = commands.NewConfirmDeliveryCommandHandler(sequence(uow), fixedClock(later), nil).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("riders cannot confirm", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered})

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)

		cmd, err := commands.NewConfirmDeliveryCommand(mustActor(t, kernel.RoleRider), o.ID())
		require.NoError(t, err)

		_, err = commands.NewConfirmDeliveryCommandHandler(sequence(uow), fixedClock(later), nil).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestCreateOrderCommissionsCommandHandler_HandleExistingAndConcurrent(t *testing.T) {
	admin := mustActor(t, kernel.RoleAdmin)

	t.Run("existing set is returned unchanged", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		existing, err := commission.NewCommission(kernel.NewUUID(), o.ID(), commission.PlatformBeneficiary(), kernel.Cedis(8), t0)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return([]*commission.Commission{existing}, nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)

		set, err := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, set, 1)
		assert.Equal(t, existing.ID(), set[0].ID)
		uow.commissions.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	})

	t.Run("repeated calls never create a second set", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})

		var stored []*commission.Commission
		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).
			Return(func(kernel.UUID) []*commission.Commission { return stored }, nil)
		uow.commissions.On("AddAll", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).([]*commission.Commission) }).
			Return(int64(3), nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		for range 3 {
			set, err := h.Handle(t.Context(), cmd)
			require.NoError(t, err)
			require.Len(t, set, 3)
		}
		uow.commissions.AssertNumberOfCalls(t, "AddAll", 1)
	})

	t.Run("concurrent writer wins and its set is re-read", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		winner := []*commission.Commission{}
		for _, b := range []commission.Beneficiary{
			commission.RiderBeneficiary(*o.Rider()),
			commission.PartnerBeneficiary(*o.Partner()),
			commission.PlatformBeneficiary(),
		} {
			c, err := commission.NewCommission(kernel.NewUUID(), o.ID(), b, kernel.Cedis(1), t0)
			require.NoError(t, err)
			winner = append(winner, c)
		}

		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(nil, nil).Once()
		uow.commissions.On("AddAll", mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(winner, nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)

		set, err := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, set, 3)
		assert.Equal(t, winner[0].ID(), set[0].ID)
	})

	t.Run("unconfirmed order is an invalid state", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered})

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(nil, nil)

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)

		_, err = commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("only admins", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommissionsCommand(mustActor(t, kernel.RoleClient), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

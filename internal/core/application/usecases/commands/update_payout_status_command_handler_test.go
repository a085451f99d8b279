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

func restoreCommission(t *testing.T, orderID kernel.UUID, b commission.Beneficiary, status commission.PayoutStatus) *commission.Commission {
	t.Helper()
	c, err := commission.Restore(kernel.NewUUID(), orderID, b, kernel.Cedis(10), status, t0, t0)
	require.NoError(t, err)
	return c
}

func TestUpdatePayoutStatusCommandHandler_Handle(t *testing.T) {
	admin := mustActor(t, kernel.RoleAdmin)
	now := t0.Add(30 * time.Hour)

	t.Run("last paid commission marks the order disbursed", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		rider := restoreCommission(t, o.ID(), commission.RiderBeneficiary(*o.Rider()), commission.Paid)
		partner := restoreCommission(t, o.ID(), commission.PartnerBeneficiary(*o.Partner()), commission.Paid)
		platform := restoreCommission(t, o.ID(), commission.PlatformBeneficiary(), commission.Processing)
		stored, err := commission.Restore(platform.ID(), o.ID(), commission.PlatformBeneficiary(), kernel.Cedis(10),
			commission.Processing, t0, t0)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("Get", mock.Anything, platform.ID()).Return(platform, nil).Once()
		uow.commissions.On("Update", mock.Anything, platform).Return(nil).Once()
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).
			Return([]*commission.Commission{rider, partner, stored}, nil).Once()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewUpdatePayoutStatusCommand(admin, platform.ID(), commission.Paid)
		require.NoError(t, err)
		h := commands.NewUpdatePayoutStatusCommandHandler(sequence(uow), fixedClock(now), nil)

		view, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "paid", view.PayoutStatus)
		assert.True(t, o.IsDisbursed())
		uow.assertAll(t)
	})

	t.Run("order stays undisbursed while other commissions are unpaid", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		rider := restoreCommission(t, o.ID(), commission.RiderBeneficiary(*o.Rider()), commission.Processing)
		partner := restoreCommission(t, o.ID(), commission.PartnerBeneficiary(*o.Partner()), commission.ReadyForPayout)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("Get", mock.Anything, rider.ID()).Return(rider, nil).Once()
		uow.commissions.On("Update", mock.Anything, rider).Return(nil).Once()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).
			Return([]*commission.Commission{rider, partner}, nil).Once()

		cmd, err := commands.NewUpdatePayoutStatusCommand(admin, rider.ID(), commission.Paid)
		require.NoError(t, err)

		_, err = commands.NewUpdatePayoutStatusCommandHandler(sequence(uow), fixedClock(now), nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.False(t, o.IsDisbursed())
		uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("order is locked before the commission set is read", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		rider := restoreCommission(t, o.ID(), commission.RiderBeneficiary(*o.Rider()), commission.Processing)

		var calls []string
		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("Get", mock.Anything, rider.ID()).Return(rider, nil).Once()
		uow.commissions.On("Update", mock.Anything, rider).Return(nil).Once()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).
			Run(func(mock.Arguments) { calls = append(calls, "lock order") }).
			Return(o, nil).Once()
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).
			Run(func(mock.Arguments) { calls = append(calls, "read set") }).
			Return([]*commission.Commission{rider}, nil).Once()
		uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

		cmd, err := commands.NewUpdatePayoutStatusCommand(admin, rider.ID(), commission.Paid)
		require.NoError(t, err)

		_, err = commands.NewUpdatePayoutStatusCommandHandler(sequence(uow), fixedClock(now), nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{"lock order", "read set"}, calls)
		assert.True(t, o.IsDisbursed())
		uow.assertAll(t)
	})

	t.Run("already disbursed order skips the set", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		require.NoError(t, o.MarkDisbursed(t0))
		rider := restoreCommission(t, o.ID(), commission.RiderBeneficiary(*o.Rider()), commission.Processing)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("Get", mock.Anything, rider.ID()).Return(rider, nil).Once()
		uow.commissions.On("Update", mock.Anything, rider).Return(nil).Once()
		uow.orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()

		cmd, err := commands.NewUpdatePayoutStatusCommand(admin, rider.ID(), commission.Paid)
		require.NoError(t, err)

		_, err = commands.NewUpdatePayoutStatusCommandHandler(sequence(uow), fixedClock(now), nil).Handle(t.Context(), cmd)

		require.NoError(t, err)
		uow.commissions.AssertNotCalled(t, "GetByOrder", mock.Anything, mock.Anything)
		uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("pending settlement cannot be paid out", func(t *testing.T) {
		c := restoreCommission(t, kernel.NewUUID(), commission.PlatformBeneficiary(), commission.PendingSettlement)

		uow := newMockUoW()
		uow.expectTx(false)
		uow.commissions.On("Get", mock.Anything, c.ID()).Return(c, nil).Once()

		cmd, err := commands.NewUpdatePayoutStatusCommand(admin, c.ID(), commission.Processing)
		require.NoError(t, err)

		_, err = commands.NewUpdatePayoutStatusCommandHandler(sequence(uow), fixedClock(now), nil).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("only admins report payouts", func(t *testing.T) {
		_, err := commands.NewUpdatePayoutStatusCommand(mustActor(t, kernel.RoleRider), kernel.NewUUID(), commission.Paid)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

package commands_test

import (
	"errors"
	"testing"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommissionsCommand(t *testing.T) {
	_, err := commands.NewCreateOrderCommissionsCommand(mustActor(t, kernel.RolePartner), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrForbidden)

	_, err = commands.NewCreateOrderCommissionsCommand(mustActor(t, kernel.RoleAdmin), kernel.UUID{})
	require.Error(t, err)

	var zero commands.CreateOrderCommissionsCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrCreateOrderCommissionsCommandIsNotConstructed)
}

func TestCreateOrderCommissionsCommandHandler_Handle(t *testing.T) {
	admin := mustActor(t, kernel.RoleAdmin)

	t.Run("missing set is computed and stored", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})

		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(nil, nil).Once()
		uow.commissions.On("AddAll", mock.Anything, mock.Anything).Return(int64(3), nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		set, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, set, 3)
		var total int64
		for _, c := range set {
			total += c.Amount
			assert.Equal(t, o.ID(), c.OrderID)
			assert.Equal(t, commission.PendingSettlement.String(), c.PayoutStatus)
		}
		assert.Equal(t, kernel.Cedis(68).MinorUnits(), total)
		uow.assertAll(t)
	})

	t.Run("existing set is returned untouched", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered, confirmed: true})
		existing, err := services.NewCommissionEngine().Split(o, t0)
		require.NoError(t, err)

		uow := newMockUoW()
		uow.expectTx(true)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(existing, nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		set, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, set, len(existing))
		uow.commissions.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
		uow.assertAll(t)
	})

	t.Run("unconfirmed order is rejected", func(t *testing.T) {
		o := restoreOrder(t, orderState{status: order.Delivered})

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, o.ID()).Return(o, nil)
		uow.commissions.On("GetByOrder", mock.Anything, o.ID()).Return(nil, nil).Once()

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, o.ID())
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
		uow.assertAll(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		id := kernel.NewUUID()

		uow := newMockUoW()
		uow.expectTx(false)
		uow.orders.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("orderId", id))

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, id)
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.assertAll(t)
	})

	t.Run("begin failure", func(t *testing.T) {
		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(errs.NewUnavailableError("postgres", errors.New("down")))

		cmd, err := commands.NewCreateOrderCommissionsCommand(admin, kernel.NewUUID())
		require.NoError(t, err)
		h := commands.NewCreateOrderCommissionsCommandHandler(sequence(uow), fixedClock(t0), nil)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnavailable)
		uow.assertAll(t)
	})
}

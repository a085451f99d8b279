package commands_test

import (
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func settleHandler(uow *MockUoW, publisher ports.EventPublisher) commands.SettleCommissionsCommandHandler {
	return commands.NewSettleCommissionsCommandHandler(
		commissionFactory(func() commands.CommissionUoW { return uow }), publisher, nil)
}

func TestSettleCommissionsCommandHandler_Handle(t *testing.T) {
	at := t0.Add(48 * time.Hour)
	cutoff := at.Add(-24 * time.Hour)

	t.Run("promotes with one bulk update and announces it", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("PromoteSettled", mock.Anything, cutoff, at).Return(int64(6), nil).Once()

		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, ports.RoutingKeyCommissionsReady,
			commands.CommissionsReadyEvent{Count: 6, Cutoff: cutoff, SettledAt: at}).Return(nil).Once()

		cmd, err := commands.NewSettleCommissionsCommand(at)
		require.NoError(t, err)

		promoted, err := settleHandler(uow, publisher).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(6), promoted)
		uow.assertAll(t)
		publisher.AssertExpectations(t)
	})

	t.Run("quiet sweep publishes nothing", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("PromoteSettled", mock.Anything, cutoff, at).Return(int64(0), nil).Once()
		publisher := new(MockPublisher)

		cmd, err := commands.NewSettleCommissionsCommand(at)
		require.NoError(t, err)

		promoted, err := settleHandler(uow, publisher).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Zero(t, promoted)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish failure is not surfaced", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectTx(true)
		uow.commissions.On("PromoteSettled", mock.Anything, cutoff, at).Return(int64(1), nil).Once()
		publisher := new(MockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

		cmd, err := commands.NewSettleCommissionsCommand(at)
		require.NoError(t, err)

		promoted, err := settleHandler(uow, publisher).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, int64(1), promoted)
	})

	t.Run("storage failure is returned and nothing is committed", func(t *testing.T) {
		uow := newMockUoW()
		uow.expectTx(false)
		uow.commissions.On("PromoteSettled", mock.Anything, cutoff, at).
			Return(int64(0), errs.NewUnavailableError("commissions", errors.New("connection refused"))).Once()

		cmd, err := commands.NewSettleCommissionsCommand(at)
		require.NoError(t, err)

		_, err = settleHandler(uow, nil).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrUnavailable)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("sweep time is required", func(t *testing.T) {
		_, err := commands.NewSettleCommissionsCommand(time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

package commission_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/commission"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newCommission(t *testing.T, createdAt time.Time) *commission.Commission {
	t.Helper()
	c, err := commission.NewCommission(kernel.NewUUID(), kernel.NewUUID(),
		commission.RiderBeneficiary(kernel.NewUUID()), kernel.Cedis(10), createdAt)
	require.NoError(t, err)
	return c
}

func TestNewCommission(t *testing.T) {
	t.Run("starts pending settlement", func(t *testing.T) {
		c := newCommission(t, t0)

		assert.Equal(t, commission.PendingSettlement, c.PayoutStatus())
		assert.Equal(t, commission.PendingSettlement, c.ExpectedPayoutStatus())
		assert.Equal(t, kernel.Cedis(10), c.Amount())
	})

	t.Run("rejects negative amounts and invalid beneficiaries", func(t *testing.T) {
		bad, _ := commission.RestoreBeneficiary(commission.BeneficiaryPlatform, nil)
		_, err := commission.NewCommission(kernel.NewUUID(), kernel.UUID{}, bad, -5, t0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestCommission_IsSettleable(t *testing.T) {
	now := t0.Add(48 * time.Hour)

	assert.False(t, newCommission(t, now.Add(-(23*time.Hour + 59*time.Minute))).IsSettleable(now))
	assert.True(t, newCommission(t, now.Add(-24*time.Hour)).IsSettleable(now))
	assert.True(t, newCommission(t, now.Add(-(24*time.Hour + time.Minute))).IsSettleable(now))
	assert.Equal(t, now.Add(-24*time.Hour), commission.SettlementCutoff(now))
}

func TestCommission_ChangePayoutStatus(t *testing.T) {
	t.Run("pending settlement cannot be paid out", func(t *testing.T) {
		c := newCommission(t, t0)

		require.ErrorIs(t, c.ChangePayoutStatus(commission.Processing, t0), errs.ErrInvalidState)
	})

	t.Run("ready to processing to paid", func(t *testing.T) {
		c, err := commission.Restore(kernel.NewUUID(), kernel.NewUUID(), commission.PlatformBeneficiary(),
			kernel.Cedis(8), commission.ReadyForPayout, t0, t0)
		require.NoError(t, err)

		require.NoError(t, c.ChangePayoutStatus(commission.Processing, t0.Add(time.Hour)))
		require.NoError(t, c.ChangePayoutStatus(commission.Paid, t0.Add(2*time.Hour)))
		assert.Equal(t, commission.Paid, c.PayoutStatus())
		assert.Equal(t, commission.ReadyForPayout, c.ExpectedPayoutStatus())

		require.ErrorIs(t, c.ChangePayoutStatus(commission.Processing, t0), errs.ErrInvalidTransition)
	})

	t.Run("failed may be retried", func(t *testing.T) {
		c, err := commission.Restore(kernel.NewUUID(), kernel.NewUUID(), commission.PlatformBeneficiary(),
			kernel.Cedis(8), commission.Failed, t0, t0)
		require.NoError(t, err)

		require.NoError(t, c.ChangePayoutStatus(commission.Processing, t0))
	})
}

func TestPayoutStatus(t *testing.T) {
	for _, s := range []commission.PayoutStatus{commission.PendingSettlement, commission.ReadyForPayout, commission.Processing} {
		assert.True(t, s.CountsAsPending(), s.String())
	}
	assert.False(t, commission.Paid.CountsAsPending())
	assert.False(t, commission.Failed.CountsAsPending())

	_, err := commission.ParsePayoutStatus("settled")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBeneficiary(t *testing.T) {
	rider := kernel.NewUUID()

	require.NoError(t, commission.RiderBeneficiary(rider).Validate())
	require.NoError(t, commission.PlatformBeneficiary().Validate())
	assert.Equal(t, "platform", commission.PlatformBeneficiary().String())

	_, err := commission.RestoreBeneficiary(commission.BeneficiaryPartner, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commission.RestoreBeneficiary(commission.BeneficiaryPlatform, &rider)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	client, _ := kernel.NewActor(kernel.NewUUID(), kernel.RoleClient)
	_, err = commission.BeneficiaryForActor(client)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestTotalAndAllPaid(t *testing.T) {
	a := newCommission(t, t0)
	b, _ := commission.Restore(kernel.NewUUID(), kernel.NewUUID(), commission.PlatformBeneficiary(),
		kernel.Cedis(8), commission.Paid, t0, t0)

	assert.Equal(t, kernel.Cedis(18), commission.Total([]*commission.Commission{a, b}))
	assert.False(t, commission.AllPaid([]*commission.Commission{a, b}))
	assert.True(t, commission.AllPaid([]*commission.Commission{b}))
	assert.False(t, commission.AllPaid(nil))
}

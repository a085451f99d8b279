package provider_test

import (
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/provider"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	p, err := provider.NewProvider(kernel.NewUUID(), provider.KindRider, " Kofi ", true)

	require.NoError(t, err)
	assert.Equal(t, "Kofi", p.Name())
	assert.True(t, p.IsAvailable())

	_, err = provider.NewProvider(kernel.UUID{}, provider.Kind("driver"), "", false)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestProvider_ValidateDispatchableAs(t *testing.T) {
	rider, _ := provider.NewProvider(kernel.NewUUID(), provider.KindRider, "Kofi", true)

	require.NoError(t, rider.ValidateDispatchableAs(provider.KindRider))
	require.ErrorIs(t, rider.ValidateDispatchableAs(provider.KindPartner), errs.ErrValueIsInvalid)

	rider.SetAvailability(false)
	require.ErrorIs(t, rider.ValidateDispatchableAs(provider.KindRider), errs.ErrInvalidState)

	var missing *provider.Provider
	require.ErrorIs(t, missing.ValidateDispatchableAs(provider.KindRider), provider.ErrProviderIsNotConstructed)
}

package commands

import (
	"context"
)

// SetProviderAvailabilityCommandHandler toggles whether dispatch may pick a provider.
type SetProviderAvailabilityCommandHandler struct {
	uowFactory ProviderUoWFactory
}

func NewSetProviderAvailabilityCommandHandler(uowFactory ProviderUoWFactory) SetProviderAvailabilityCommandHandler {
	return SetProviderAvailabilityCommandHandler{uowFactory: uowFactory}
}

func (h SetProviderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetProviderAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProviderRepository()
	p, err := repo.Get(ctx, cmd.ProviderID())
	if err != nil {
		return err
	}

	p.SetAvailability(cmd.Available())
	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

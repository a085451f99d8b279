package commands

import (
	"context"

	"laundry/internal/core/domain/model/provider"
)

// RegisterProviderCommandHandler stores a new, available provider profile.
type RegisterProviderCommandHandler struct {
	uowFactory ProviderUoWFactory
}

func NewRegisterProviderCommandHandler(uowFactory ProviderUoWFactory) RegisterProviderCommandHandler {
	return RegisterProviderCommandHandler{uowFactory: uowFactory}
}

func (h RegisterProviderCommandHandler) Handle(ctx context.Context, cmd RegisterProviderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := provider.NewProvider(cmd.ID(), cmd.Kind(), cmd.Name(), true)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProviderRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/provider"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

var ErrRegisterProviderCommandIsNotConstructed = errors.New(
	"RegisterProviderCommand must be created via NewRegisterProviderCommand constructor",
)

// RegisterProviderCommand records a rider or partner profile so dispatch can bind it.
// The id is the provider's identity subject.
type RegisterProviderCommand struct {
	actor kernel.Actor
	id    kernel.UUID
	kind  provider.Kind
	name  string

	guard guard.ConstructorGuard
}

func NewRegisterProviderCommand(actor kernel.Actor, id kernel.UUID, kind provider.Kind, name string) (RegisterProviderCommand, error) {
	if err := errors.Join(actor.Validate(), id.Validate()); err != nil {
		return RegisterProviderCommand{}, err
	}
	if _, err := provider.ParseKind(string(kind)); err != nil {
		return RegisterProviderCommand{}, err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return RegisterProviderCommand{}, errs.NewForbiddenError(actor.String(), "register providers")
	}
	return RegisterProviderCommand{actor: actor, id: id, kind: kind, name: name, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterProviderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterProviderCommandIsNotConstructed)
}

func (c RegisterProviderCommand) ID() kernel.UUID     { return c.id }
func (c RegisterProviderCommand) Kind() provider.Kind { return c.kind }
func (c RegisterProviderCommand) Name() string        { return c.name }

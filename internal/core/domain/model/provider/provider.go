// Package provider models the riders and partner laundries that dispatch binds to orders.
package provider

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// Kind distinguishes riders from partner laundries.
type Kind string

const (
	KindRider   Kind = "rider"
	KindPartner Kind = "partner"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindRider, KindPartner:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("provider kind", fmt.Errorf("%q is not a valid kind", s))
	}
}

var ErrProviderIsNotConstructed = errors.New("Provider must be created via NewProvider constructor")

// Provider is a rider or partner profile with its current availability.
type Provider struct {
	id        kernel.UUID
	kind      Kind
	name      string
	available bool
	guard     guard.ConstructorGuard
}

// NewProvider validates and builds a provider profile.
func NewProvider(id kernel.UUID, kind Kind, name string, available bool) (*Provider, error) {
	var kindErr, nameErr error
	if _, err := ParseKind(string(kind)); err != nil {
		kindErr = err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("provider name")
	}
	if err := errors.Join(id.Validate(), kindErr, nameErr); err != nil {
		return nil, err
	}

	return &Provider{
		id:        id,
		kind:      kind,
		name:      name,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *Provider) Validate() error {
	if p == nil {
		return ErrProviderIsNotConstructed
	}
	return p.guard.Validate(ErrProviderIsNotConstructed)
}

func (p *Provider) ID() kernel.UUID   { return p.id }
func (p *Provider) Kind() Kind        { return p.kind }
func (p *Provider) Name() string      { return p.name }
func (p *Provider) IsAvailable() bool { return p.available }

// SetAvailability toggles whether dispatch may bind the provider to new orders.
func (p *Provider) SetAvailability(available bool) {
	p.available = available
}

// ValidateDispatchableAs checks the provider can be bound as the given kind.
func (p *Provider) ValidateDispatchableAs(kind Kind) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.kind != kind {
		return errs.NewValueIsInvalidErrorWithCause(
			string(kind),
			fmt.Errorf("provider %s is a %s", p.id, p.kind),
		)
	}
	if !p.available {
		return errs.NewInvalidStateError(string(kind), fmt.Sprintf("%s is not available", p.name))
	}
	return nil
}

package kernel

import (
	"errors"
	"fmt"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"

	"github.com/google/uuid"
)

// Role is the marketplace role of an authenticated actor.
type Role string

const (
	RoleClient  Role = "client"
	RoleRider   Role = "rider"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string coming from a verified identity.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// Validate rejects unknown roles.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleRider, RolePartner, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// ErrActorIsNotConstructed is returned for an Actor that did not pass through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is an already-verified identity. It is produced once at the transport
// boundary (token verification) and consumed by every command; raw credentials
// never reach the core.
type Actor struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor builds a verified actor from an identity provider's claims.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

// SystemActor is the identity used by scheduled sweeps.
func SystemActor() Actor {
	return Actor{id: SystemActorID, role: RoleAdmin, guard: guard.NewConstructorGuard()}
}

// SystemActorID identifies changes made by the scheduler rather than a person.
var SystemActorID = UUID{id: uuid.MustParse("ffffffff-ffff-4fff-bfff-ffffffffff01")}

// Validate ensures the actor came from NewActor or SystemActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// IsSystem reports whether the actor is the scheduler identity.
func (a Actor) IsSystem() bool {
	return a.id.IsEqual(SystemActorID)
}

func (a Actor) String() string {
	return fmt.Sprintf("%s:%s", a.role, a.id)
}

package kernel

import (
	"errors"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor constructor")

// Actor is the authenticated caller of an operation. Identity and role are supplied
// by the transport adapter and are trusted by the domain.
type Actor struct {
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsAdmin() bool {
	return a.role == Admin
}

// Owns reports whether the actor is the given owner.
func (a Actor) Owns(ownerID UUID) bool {
	return a.id.IsEqual(ownerID)
}

// CanManage reports whether the actor is the owner or an admin.
func (a Actor) CanManage(ownerID UUID) bool {
	return a.IsAdmin() || a.Owns(ownerID)
}

package actor

import (
	"errors"
	"fmt"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
	"donation/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through New or FromFlag.
var ErrActorIsNotConstructed = errors.New("Actor must be created via New or FromFlag constructor")

// Kind is the account type fixed at registration.
type Kind int

const (
	// UnknownKind catches uninitialized values.
	UnknownKind Kind = iota

	// Member accounts donate and request items.
	Member

	// Volunteer accounts may additionally carry items (pickup and deliver).
	Volunteer
)

func (k Kind) String() string {
	switch k {
	case Member:
		return "member"
	case Volunteer:
		return "volunteer"
	default:
		return "unknown"
	}
}

// Validate rejects UnknownKind and out-of-range values.
func (k Kind) Validate() error {
	if k != Member && k != Volunteer {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid actor kind", k))
	}
	return nil
}

// KindFromFlag maps the volunteer flag carried by tokens to a Kind.
func KindFromFlag(isVolunteer bool) Kind {
	if isVolunteer {
		return Volunteer
	}
	return Member
}

// Role is the part an actor plays with respect to one item.
type Role int

const (
	NoRole Role = iota
	Donor
	Requester
	Courier
)

func (r Role) String() string {
	switch r {
	case Donor:
		return "donor"
	case Requester:
		return "requester"
	case Courier:
		return "courier"
	default:
		return "none"
	}
}

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	id    kernel.UUID
	kind  Kind
	guard guard.ConstructorGuard
}

// New creates an Actor, validating both the identifier and the kind.
func New(id kernel.UUID, kind Kind) (Actor, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// FromFlag creates an Actor from the (id, isVolunteer) pair issued by the auth collaborator.
func FromFlag(id kernel.UUID, isVolunteer bool) (Actor, error) {
	return New(id, KindFromFlag(isVolunteer))
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Kind() Kind {
	return a.kind
}

// Is reports whether the actor is identified by id.
func (a Actor) Is(id kernel.UUID) bool {
	return a.id.IsEqual(id)
}

// RoleFor classifies the actor against the donor of an item.
// Ownership wins over kind: a volunteer who posted the item is its Donor.
func (a Actor) RoleFor(postedBy kernel.UUID) Role {
	switch {
	case a.Is(postedBy):
		return Donor
	case a.kind == Volunteer:
		return Courier
	default:
		return Requester
	}
}

// CanRequest holds for everybody except the donor.
func (a Actor) CanRequest(postedBy kernel.UUID) bool {
	return a.RoleFor(postedBy) != Donor
}

// CanAssign holds only for the donor.
func (a Actor) CanAssign(postedBy kernel.UUID) bool {
	return a.RoleFor(postedBy) == Donor
}

// CanCarry holds for volunteer accounts. It is independent of the item, so a
// volunteer may carry an item they posted.
func (a Actor) CanCarry() bool {
	return a.kind == Volunteer
}

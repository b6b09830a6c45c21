package item

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
)

// DefaultEmbargo is the delay after posting before a courier may pick an item up.
// It gives the donor and the requesters time to arrange a handover themselves.
const DefaultEmbargo = 3 * 24 * time.Hour

// Action names, used in errors and logs.
const (
	ActionRequest = "request"
	ActionAssign  = "assign"
	ActionPickup  = "pickup"
	ActionDeliver = "deliver"
)

// Reasons carried by rejected actions. Each failure condition has its own code.
const (
	ReasonOwnItem         = "own_item"
	ReasonNotDonor        = "not_donor"
	ReasonNotCourier      = "not_courier"
	ReasonWrongStatus     = "wrong_status"
	ReasonNotRequested    = "taker_not_requested"
	ReasonAlreadyAssigned = "already_assigned"
	ReasonEmbargoActive   = "embargo_active"
	ReasonNoAssignee      = "no_assignee"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is the aggregate root whose lifecycle the system governs.
//
// Item follows these invariants:
//   - id, name, description, postedBy and createdAt never change after creation
//   - requestedBy holds each requester once, in the order they first asked,
//     and never contains postedBy
//   - assignedTo, once set, is a member of requestedBy and never changes
//   - status only moves forward: Posted -> Picked -> Delivered
//   - a Delivered item always has an assignee
//
// version is the persisted revision the item was read at. Repositories use it
// for compare-and-set; the domain never changes it.
type Item struct {
	id          kernel.UUID
	name        string
	description string
	postedBy    kernel.UUID
	requestedBy []kernel.UUID
	assignedTo  *kernel.UUID
	status      Status
	createdAt   time.Time
	version     int64

	isConstructed bool
}

// NewItem creates a freshly posted item with no requests and no assignee.
//
// Parameters:
//   - id: Unique identifier for the item
//   - name: Short title shown in listings (required)
//   - description: Free text, may be empty
//   - donor: Identifier of the posting user
//   - createdAt: Posting time; the pickup embargo is measured from it
//
// Example:
//
//	it, err := item.NewItem(kernel.NewUUID(), "Winter coat", "Size M", donorID, clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewItem(id kernel.UUID, name, description string, donor kernel.UUID, createdAt time.Time) (*Item, error) {
	it := &Item{
		description:   description,
		requestedBy:   make([]kernel.UUID, 0),
		status:        Posted,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setName(name),
		it.setPostedBy(donor),
		it.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// RestoreItem rebuilds an item from persistence and re-checks every invariant,
// so corrupted rows surface as validation errors instead of illegal transitions.
func RestoreItem(
	id kernel.UUID,
	name, description string,
	postedBy kernel.UUID,
	requestedBy []kernel.UUID,
	assignedTo *kernel.UUID,
	status Status,
	createdAt time.Time,
	version int64,
) (*Item, error) {
	it := &Item{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		it.setID(id),
		it.setName(name),
		it.setPostedBy(postedBy),
		it.setCreatedAt(createdAt),
		it.setVersion(version),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	it.status = status

	if err := it.setRequestedBy(requestedBy); err != nil {
		return nil, err
	}
	if err := it.setAssignedTo(assignedTo); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveAssignee(assignedTo != nil); err != nil {
		return nil, err
	}

	return it, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// Clone returns a deep copy. The lifecycle engine works on clones so that a
// rejected transition cannot leak partial changes into the caller's item.
func (i *Item) Clone() *Item {
	c := *i
	c.requestedBy = slices.Clone(i.requestedBy)
	if i.assignedTo != nil {
		assignee := *i.assignedTo
		c.assignedTo = &assignee
	}
	return &c
}

// IsEqual compares two items by identity.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) Name() string {
	return i.name
}

func (i *Item) Description() string {
	return i.description
}

// PostedBy returns the donor's identifier.
func (i *Item) PostedBy() kernel.UUID {
	return i.postedBy
}

// RequestedBy returns a copy of the requesters in first-request order.
func (i *Item) RequestedBy() []kernel.UUID {
	return slices.Clone(i.requestedBy)
}

// AssignedTo returns the chosen requester, or nil while unassigned.
func (i *Item) AssignedTo() *kernel.UUID {
	if i.assignedTo == nil {
		return nil
	}
	assignee := *i.assignedTo
	return &assignee
}

func (i *Item) Status() Status {
	return i.status
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// Version returns the revision this item was loaded at.
func (i *Item) Version() int64 {
	return i.version
}

// IsRequestedBy reports whether id is among the requesters.
func (i *Item) IsRequestedBy(id kernel.UUID) bool {
	return slices.ContainsFunc(i.requestedBy, id.IsEqual)
}

// IsAssigned reports whether the donor has already chosen a taker.
func (i *Item) IsAssigned() bool {
	return i.assignedTo != nil
}

// PickupAvailableAt is the first instant at which a courier may pick the item up.
func (i *Item) PickupAvailableAt(embargo time.Duration) time.Time {
	return i.createdAt.Add(embargo)
}

// Request records interest from a.
//
// Business rules:
//   - The donor may never request their own item (Forbidden, regardless of status)
//   - The item must be Posted
//   - Requesting again is a no-op, so retried calls are safe
//
// Returns changed=false when a was already a requester.
func (i *Item) Request(a actor.Actor) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if !a.CanRequest(i.postedBy) {
		return false, errs.NewForbiddenError(ActionRequest, ReasonOwnItem)
	}
	if err := i.status.ValidateOpen(ActionRequest); err != nil {
		return false, err
	}

	if i.IsRequestedBy(a.ID()) {
		return false, nil
	}

	i.requestedBy = append(i.requestedBy, a.ID())
	return true, nil
}

// Assign binds the item to taker on behalf of the donor a.
//
// Business rules:
//   - Only the donor may assign
//   - The item must be Posted
//   - The item must not be assigned yet; assignment happens exactly once
//   - taker must currently be a requester
//
// The donor may pick any requester; no ordering among requesters is implied.
func (i *Item) Assign(a actor.Actor, taker kernel.UUID) error {
	if err := errors.Join(a.Validate(), taker.Validate()); err != nil {
		return err
	}
	if !a.CanAssign(i.postedBy) {
		return errs.NewForbiddenError(ActionAssign, ReasonNotDonor)
	}
	if err := i.status.ValidateOpen(ActionAssign); err != nil {
		return err
	}
	if i.IsAssigned() {
		return errs.NewInvalidTransitionError(ActionAssign, i.status.String(), ReasonAlreadyAssigned)
	}
	if !i.IsRequestedBy(taker) {
		return errs.NewInvalidTransitionError(ActionAssign, i.status.String(), ReasonNotRequested)
	}

	i.assignedTo = &taker
	return nil
}

// Pickup moves the item to Picked on behalf of the courier a.
//
// Business rules:
//   - Only volunteers may carry items
//   - The item must be Posted
//   - now - createdAt must be at least embargo; the boundary itself is allowed
func (i *Item) Pickup(a actor.Actor, now time.Time, embargo time.Duration) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.CanCarry() {
		return errs.NewForbiddenError(ActionPickup, ReasonNotCourier)
	}

	next, err := i.status.Pickup()
	if err != nil {
		return err
	}
	if now.Sub(i.createdAt) < embargo {
		return errs.NewInvalidTransitionError(ActionPickup, i.status.String(), ReasonEmbargoActive)
	}

	i.status = next
	return nil
}

// Deliver moves the item to Delivered on behalf of the courier a.
//
// Business rules:
//   - Only volunteers may carry items
//   - The item must be Picked
//   - The item must have an assignee to deliver to
func (i *Item) Deliver(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.CanCarry() {
		return errs.NewForbiddenError(ActionDeliver, ReasonNotCourier)
	}

	next, err := i.status.Deliver()
	if err != nil {
		return err
	}
	if !i.IsAssigned() {
		return errs.NewInvalidTransitionError(ActionDeliver, i.status.String(), ReasonNoAssignee)
	}

	i.status = next
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setPostedBy(donor kernel.UUID) error {
	if err := donor.Validate(); err != nil {
		return err
	}
	i.postedBy = donor
	return nil
}

func (i *Item) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	i.createdAt = createdAt
	return nil
}

func (i *Item) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}
	i.version = version
	return nil
}

// setRequestedBy requires postedBy to be set first.
func (i *Item) setRequestedBy(requestedBy []kernel.UUID) error {
	list := make([]kernel.UUID, 0, len(requestedBy))
	for _, id := range requestedBy {
		if err := id.Validate(); err != nil {
			return err
		}
		if id.IsEqual(i.postedBy) {
			return errs.NewValueIsInvalidErrorWithCause("requestedBy", errors.New("donor cannot request own item"))
		}
		if slices.ContainsFunc(list, id.IsEqual) {
			return errs.NewValueIsInvalidErrorWithCause("requestedBy", fmt.Errorf("%s requested twice", id))
		}
		list = append(list, id)
	}
	i.requestedBy = list
	return nil
}

// setAssignedTo requires requestedBy to be set first.
func (i *Item) setAssignedTo(assignedTo *kernel.UUID) error {
	if assignedTo == nil {
		i.assignedTo = nil
		return nil
	}
	if err := assignedTo.Validate(); err != nil {
		return err
	}
	if !i.IsRequestedBy(*assignedTo) {
		return errs.NewValueIsInvalidErrorWithCause("assignedTo", fmt.Errorf("%s is not a requester", assignedTo))
	}
	assignee := *assignedTo
	i.assignedTo = &assignee
	return nil
}

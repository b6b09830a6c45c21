package services

import (
	"errors"
	"fmt"
	"time"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/notification"
	"donation/internal/core/domain/model/user"
	"donation/internal/pkg/errs"
)

// ErrReputationMismatch is returned when counters are applied to users that are
// not the giver and taker named by the delta.
var ErrReputationMismatch = errors.New("reputation delta does not match users")

// ReputationDelta names the two users whose counters grow by one on delivery.
type ReputationDelta struct {
	GiverID kernel.UUID
	TakerID kernel.UUID
}

// Transition is the outcome of a legal action: the new item state and the side
// effects that must be committed together with it.
type Transition struct {
	// Item is a new instance; the input item is never modified.
	Item *item.Item

	// Changed is false when the action was an idempotent no-op and nothing
	// needs to be written.
	Changed bool

	// Notification is set only by Assign.
	Notification *notification.Notification

	// Reputation is set only by Deliver.
	Reputation *ReputationDelta
}

// LifecycleEngine decides item transitions. It holds no state besides the
// embargo length and never reads the clock: callers pass "now" in.
//
// Every method works on a clone, so on rejection the caller's item is exactly
// as it was and no side effect exists.
//
// Example usage:
//
//	engine := services.NewLifecycleEngine(item.DefaultEmbargo)
//	tr, err := engine.Pickup(it, courier, clock.Now())
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // too early, or not posted any more
//	}
type LifecycleEngine struct {
	embargo time.Duration
}

// NewLifecycleEngine returns an engine with the given pickup embargo. A
// non-positive embargo falls back to item.DefaultEmbargo.
func NewLifecycleEngine(embargo time.Duration) LifecycleEngine {
	if embargo <= 0 {
		embargo = item.DefaultEmbargo
	}
	return LifecycleEngine{embargo: embargo}
}

func (e LifecycleEngine) Embargo() time.Duration {
	return e.embargo
}

// Request adds a to the requesters of it.
func (e LifecycleEngine) Request(it *item.Item, a actor.Actor) (Transition, error) {
	next, err := clone(it)
	if err != nil {
		return Transition{}, err
	}

	changed, err := next.Request(a)
	if err != nil {
		return Transition{}, err
	}

	return Transition{Item: next, Changed: changed}, nil
}

// Assign binds it to taker and renders the taker's notification. donorDisplay
// is frozen into the message.
func (e LifecycleEngine) Assign(
	it *item.Item,
	a actor.Actor,
	taker kernel.UUID,
	donorDisplay string,
	now time.Time,
) (Transition, error) {
	next, err := clone(it)
	if err != nil {
		return Transition{}, err
	}

	if err = next.Assign(a, taker); err != nil {
		return Transition{}, err
	}

	n, err := notification.NewAssignmentNotification(kernel.NewUUID(), taker, next.ID(), next.Name(), donorDisplay, now)
	if err != nil {
		return Transition{}, err
	}

	return Transition{Item: next, Changed: true, Notification: n}, nil
}

// Pickup moves it to Picked once the embargo after posting has elapsed at now.
func (e LifecycleEngine) Pickup(it *item.Item, a actor.Actor, now time.Time) (Transition, error) {
	next, err := clone(it)
	if err != nil {
		return Transition{}, err
	}

	if err = next.Pickup(a, now, e.embargo); err != nil {
		return Transition{}, err
	}

	return Transition{Item: next, Changed: true}, nil
}

// Deliver moves it to Delivered and names the counters to increment.
func (e LifecycleEngine) Deliver(it *item.Item, a actor.Actor) (Transition, error) {
	next, err := clone(it)
	if err != nil {
		return Transition{}, err
	}

	if err = next.Deliver(a); err != nil {
		return Transition{}, err
	}

	return Transition{
		Item:    next,
		Changed: true,
		Reputation: &ReputationDelta{
			GiverID: next.PostedBy(),
			TakerID: *next.AssignedTo(),
		},
	}, nil
}

// ApplyReputation increments the counters of giver and taker. It refuses to
// touch either user unless both match the delta.
func (e LifecycleEngine) ApplyReputation(delta ReputationDelta, giver, taker *user.User) error {
	if err := errors.Join(giver.Validate(), taker.Validate()); err != nil {
		return err
	}
	if !giver.ID().IsEqual(delta.GiverID) || !taker.ID().IsEqual(delta.TakerID) {
		return fmt.Errorf("%w: want %s/%s, got %s/%s", ErrReputationMismatch,
			delta.GiverID, delta.TakerID, giver.ID(), taker.ID())
	}

	giver.RecordGiven()
	taker.RecordTaken()
	return nil
}

func clone(it *item.Item) (*item.Item, error) {
	if err := it.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("item", err)
	}
	return it.Clone(), nil
}

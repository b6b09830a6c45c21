package commands

import (
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrPickupItemCommandIsNotConstructed = errors.New(
	"PickupItemCommand must be created via NewPickupItemCommand constructor",
)

// PickupItemCommand is issued by a volunteer who collected the item from its donor.
type PickupItemCommand struct {
	itemID kernel.UUID
	actor  actor.Actor

	guard guard.ConstructorGuard
}

func NewPickupItemCommand(itemID kernel.UUID, a actor.Actor) (PickupItemCommand, error) {
	if err := errors.Join(itemID.Validate(), a.Validate()); err != nil {
		return PickupItemCommand{}, err
	}

	return PickupItemCommand{
		itemID: itemID,
		actor:  a,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c PickupItemCommand) Validate() error {
	return c.guard.Validate(ErrPickupItemCommandIsNotConstructed)
}

func (c PickupItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c PickupItemCommand) Actor() actor.Actor {
	return c.actor
}

package commands

import (
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrDeliverItemCommandIsNotConstructed = errors.New(
	"DeliverItemCommand must be created via NewDeliverItemCommand constructor",
)

// DeliverItemCommand is issued by a volunteer who handed the item to its assignee.
type DeliverItemCommand struct {
	itemID kernel.UUID
	actor  actor.Actor

	guard guard.ConstructorGuard
}

func NewDeliverItemCommand(itemID kernel.UUID, a actor.Actor) (DeliverItemCommand, error) {
	if err := errors.Join(itemID.Validate(), a.Validate()); err != nil {
		return DeliverItemCommand{}, err
	}

	return DeliverItemCommand{
		itemID: itemID,
		actor:  a,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverItemCommand) Validate() error {
	return c.guard.Validate(ErrDeliverItemCommandIsNotConstructed)
}

func (c DeliverItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c DeliverItemCommand) Actor() actor.Actor {
	return c.actor
}

package commands

import (
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrRequestItemCommandIsNotConstructed = errors.New(
	"RequestItemCommand must be created via NewRequestItemCommand constructor",
)

// RequestItemCommand records that actor wants the item identified by itemID.
type RequestItemCommand struct {
	itemID kernel.UUID
	actor  actor.Actor

	guard guard.ConstructorGuard
}

func NewRequestItemCommand(itemID kernel.UUID, a actor.Actor) (RequestItemCommand, error) {
	if err := errors.Join(itemID.Validate(), a.Validate()); err != nil {
		return RequestItemCommand{}, err
	}

	return RequestItemCommand{
		itemID: itemID,
		actor:  a,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RequestItemCommand) Validate() error {
	return c.guard.Validate(ErrRequestItemCommandIsNotConstructed)
}

func (c RequestItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c RequestItemCommand) Actor() actor.Actor {
	return c.actor
}

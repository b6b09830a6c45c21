package commands

import (
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrAssignItemCommandIsNotConstructed = errors.New(
	"AssignItemCommand must be created via NewAssignItemCommand constructor",
)

// AssignItemCommand is the donor's choice of one requester as the item's taker.
//
// Example:
//
//	cmd, err := NewAssignItemCommand(itemID, donor, takerID)
//	if err != nil {
//	    return err
//	}
//	it, err := handler.Handle(ctx, cmd)
type AssignItemCommand struct {
	itemID  kernel.UUID
	actor   actor.Actor
	takerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignItemCommand(itemID kernel.UUID, a actor.Actor, takerID kernel.UUID) (AssignItemCommand, error) {
	if err := errors.Join(itemID.Validate(), a.Validate(), takerID.Validate()); err != nil {
		return AssignItemCommand{}, err
	}

	return AssignItemCommand{
		itemID:  itemID,
		actor:   a,
		takerID: takerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignItemCommand) Validate() error {
	return c.guard.Validate(ErrAssignItemCommandIsNotConstructed)
}

func (c AssignItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c AssignItemCommand) Actor() actor.Actor {
	return c.actor
}

func (c AssignItemCommand) TakerID() kernel.UUID {
	return c.takerID
}

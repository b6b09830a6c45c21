package commands

import (
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
	"donation/internal/pkg/guard"
)

var ErrCreateItemCommandIsNotConstructed = errors.New(
	"CreateItemCommand must be created via NewCreateItemCommand constructor",
)

// CreateItemCommand posts a new item on behalf of donor.
type CreateItemCommand struct {
	itemID      kernel.UUID
	name        string
	description string
	donor       actor.Actor

	guard guard.ConstructorGuard
}

func NewCreateItemCommand(itemID kernel.UUID, name, description string, donor actor.Actor) (CreateItemCommand, error) {
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(itemID.Validate(), nameErr, donor.Validate()); err != nil {
		return CreateItemCommand{}, err
	}

	return CreateItemCommand{
		itemID:      itemID,
		name:        name,
		description: description,
		donor:       donor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

func (c CreateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c CreateItemCommand) Name() string {
	return c.name
}

func (c CreateItemCommand) Description() string {
	return c.description
}

func (c CreateItemCommand) Donor() actor.Actor {
	return c.donor
}

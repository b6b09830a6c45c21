package commands

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
)

// CreateItemCommandHandler posts items in status Posted. The posting time comes
// from the injected clock and starts the pickup embargo.
//
// Example:
//
//	handler := NewCreateItemCommandHandler(uowFactory, kernel.SystemClock())
//	cmd, _ := NewCreateItemCommand(kernel.NewUUID(), "Winter coat", "Size M", donor)
//	it, err := handler.Handle(ctx, cmd)
type CreateItemCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateItemCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateItemCommandHandler {
	return CreateItemCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle fails with *errs.ObjectNotFoundError when the donor is not registered.
func (h CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, cmd.Donor().ID()); err != nil {
		return nil, err
	}

	it, err := item.NewItem(cmd.ItemID(), cmd.Name(), cmd.Description(), cmd.Donor().ID(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.ItemRepository().Add(ctx, it); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return it, nil
}

package commands

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/services"
)

// RequestItemCommandHandler adds the actor to the item's requesters.
// A repeated request commits nothing and returns the item as stored.
type RequestItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	retrier    ConflictRetrier
}

func NewRequestItemCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	retrier ConflictRetrier,
) RequestItemCommandHandler {
	return RequestItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		retrier:    retrier,
	}
}

func (h RequestItemCommandHandler) Handle(ctx context.Context, cmd RequestItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runWithRetry(ctx, h.retrier, item.ActionRequest, func(ctx context.Context) (*item.Item, error) {
		return h.attempt(ctx, cmd)
	})
}

func (h RequestItemCommandHandler) attempt(ctx context.Context, cmd RequestItemCommand) (*item.Item, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()

	it, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	tr, err := h.engine.Request(it, cmd.Actor())
	if err != nil {
		return nil, err
	}
	if !tr.Changed {
		return tr.Item, nil
	}

	if err = itemRepo.Update(ctx, tr.Item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.Item, nil
}

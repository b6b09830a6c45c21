package commands

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/services"
)

// PickupItemCommandHandler moves an item to Picked. Embargo eligibility is
// evaluated against the injected clock at call time.
type PickupItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	clock      kernel.Clock
	retrier    ConflictRetrier
}

func NewPickupItemCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	clock kernel.Clock,
	retrier ConflictRetrier,
) PickupItemCommandHandler {
	return PickupItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		retrier:    retrier,
	}
}

func (h PickupItemCommandHandler) Handle(ctx context.Context, cmd PickupItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runWithRetry(ctx, h.retrier, item.ActionPickup, func(ctx context.Context) (*item.Item, error) {
		return h.attempt(ctx, cmd)
	})
}

func (h PickupItemCommandHandler) attempt(ctx context.Context, cmd PickupItemCommand) (*item.Item, error) {
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

	tr, err := h.engine.Pickup(it, cmd.Actor(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, tr.Item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.Item, nil
}

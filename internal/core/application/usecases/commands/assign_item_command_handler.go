package commands

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/services"
)

// AssignItemCommandHandler binds an item to one of its requesters and stores the
// taker's notification in the same transaction.
//
// Of two assignments racing on one item only one commits. The other loses the
// compare-and-set, is re-run on fresh state and then fails with
// *errs.InvalidTransitionError because the item is already assigned.
type AssignItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	clock      kernel.Clock
	retrier    ConflictRetrier
}

func NewAssignItemCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	clock kernel.Clock,
	retrier ConflictRetrier,
) AssignItemCommandHandler {
	return AssignItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		clock:      clock,
		retrier:    retrier,
	}
}

func (h AssignItemCommandHandler) Handle(ctx context.Context, cmd AssignItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runWithRetry(ctx, h.retrier, item.ActionAssign, func(ctx context.Context) (*item.Item, error) {
		return h.attempt(ctx, cmd)
	})
}

func (h AssignItemCommandHandler) attempt(ctx context.Context, cmd AssignItemCommand) (*item.Item, error) {
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

	donor, err := uow.UserRepository().Get(ctx, it.PostedBy())
	if err != nil {
		return nil, err
	}

	tr, err := h.engine.Assign(it, cmd.Actor(), cmd.TakerID(), donor.DisplayName(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, tr.Item); err != nil {
		return nil, err
	}

	if err = uow.NotificationRepository().Add(ctx, tr.Notification); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.Item, nil
}

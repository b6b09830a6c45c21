package commands

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/user"
	"donation/internal/core/domain/services"
)

// DeliverItemCommandHandler completes an item's lifecycle. The status change and
// both reputation counters are written in one transaction, each under
// compare-and-set, so a delivery is counted exactly once. User rows are written
// in ascending id order, so deliveries running in opposite directions between
// the same two users never wait on each other's locks.
//
// Example:
//
//	handler := NewDeliverItemCommandHandler(uowFactory, engine, retrier)
//	cmd, _ := NewDeliverItemCommand(itemID, courier)
//	it, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // not picked yet, already delivered, or nobody to deliver to
//	}
type DeliverItemCommandHandler struct {
	uowFactory UoWFactory
	engine     services.LifecycleEngine
	retrier    ConflictRetrier
}

func NewDeliverItemCommandHandler(
	uowFactory UoWFactory,
	engine services.LifecycleEngine,
	retrier ConflictRetrier,
) DeliverItemCommandHandler {
	return DeliverItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
		retrier:    retrier,
	}
}

func (h DeliverItemCommandHandler) Handle(ctx context.Context, cmd DeliverItemCommand) (*item.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return runWithRetry(ctx, h.retrier, item.ActionDeliver, func(ctx context.Context) (*item.Item, error) {
		return h.attempt(ctx, cmd)
	})
}

func (h DeliverItemCommandHandler) attempt(ctx context.Context, cmd DeliverItemCommand) (*item.Item, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	itemRepo := uow.ItemRepository()
	userRepo := uow.UserRepository()

	it, err := itemRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	tr, err := h.engine.Deliver(it, cmd.Actor())
	if err != nil {
		return nil, err
	}

	giver, err := userRepo.Get(ctx, tr.Reputation.GiverID)
	if err != nil {
		return nil, err
	}

	taker, err := userRepo.Get(ctx, tr.Reputation.TakerID)
	if err != nil {
		return nil, err
	}

	if err = h.engine.ApplyReputation(*tr.Reputation, giver, taker); err != nil {
		return nil, err
	}

	if err = itemRepo.Update(ctx, tr.Item); err != nil {
		return nil, err
	}

	for _, u := range inLockOrder(giver, taker) {
		if err = userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.Item, nil
}

func inLockOrder(a, b *user.User) []*user.User {
	if b.ID().Compare(a.ID()) < 0 {
		return []*user.User{b, a}
	}
	return []*user.User{a, b}
}

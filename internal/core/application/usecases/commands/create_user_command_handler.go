package commands

import (
	"context"
	"errors"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/user"
	"donation/internal/core/ports"
	"donation/internal/pkg/errs"
)

// CreateUserCommandHandler registers users with zeroed reputation counters.
// A taken email is reported as *errs.ConflictError.
type CreateUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
}

func NewCreateUserCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher) CreateUserCommandHandler {
	return CreateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h CreateUserCommandHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.UserID(), cmd.Email(), actor.KindFromFlag(cmd.IsVolunteer()), hash)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()

	existing, err := userRepo.GetByEmail(ctx, u.Email())
	switch {
	case err == nil:
		return nil, errs.NewConflictError("user", existing.Email(), existing.Version())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

package ports

import (
	"context"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for users and their counters.
type UserRepository interface {
	// Add registers a user. A taken email yields *errs.ConflictError.
	Add(ctx context.Context, aggregate *user.User) error

	// Update writes the counters with the same compare-and-set discipline as
	// ItemRepository.Update.
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns *errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks a user up by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

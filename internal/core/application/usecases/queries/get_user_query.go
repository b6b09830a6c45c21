package queries

import (
	"errors"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrGetUserQueryIsNotConstructed = errors.New(
	"GetUserQuery must be created via NewGetUserQuery constructor",
)

// GetUserQuery retrieves a user's profile with reputation counters.
type GetUserQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetUserQuery(userID kernel.UUID) (GetUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

func (q GetUserQuery) UserID() kernel.UUID {
	return q.userID
}

type UserView struct {
	ID          kernel.UUID
	Email       string
	IsVolunteer bool
	ItemsGiven  int
	ItemsTaken  int
}

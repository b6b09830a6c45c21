package queries

import (
	"errors"
	"time"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery retrieves the inbox of one user, newest first.
type ListNotificationsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(userID kernel.UUID) (ListNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListNotificationsQuery{}, err
	}
	return ListNotificationsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) UserID() kernel.UUID {
	return q.userID
}

// NotificationView is a notification with the current name of its item.
// ItemName is empty if the item no longer exists.
type NotificationView struct {
	ID        kernel.UUID
	Message   string
	ItemID    kernel.UUID
	ItemName  string
	Read      bool
	CreatedAt time.Time
}

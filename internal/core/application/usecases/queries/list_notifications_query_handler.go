package queries

import (
	"context"

	"donation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]NotificationView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			n.id,
			n.message,
			n.item_id,
			i.name,
			n.read,
			n.created_at
		FROM notifications n
		LEFT JOIN items i ON i.id = n.item_id
		WHERE n.user_id = ?
		ORDER BY n.created_at DESC, n.id
	`, query.UserID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view     NotificationView
			id       uuid.UUID
			itemID   uuid.UUID
			itemName *string
		)

		if err = rows.Scan(&id, &view.Message, &itemID, &itemName, &view.Read, &view.CreatedAt); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		if itemName != nil {
			view.ItemName = *itemName
		}
		view.CreatedAt = view.CreatedAt.UTC()

		notifications = append(notifications, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

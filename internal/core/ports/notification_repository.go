package ports

import (
	"context"

	"donation/internal/core/domain/model/notification"
)

// NotificationRepository stores notifications. They are append-only: once
// written, the lifecycle never changes them.
type NotificationRepository interface {
	Add(ctx context.Context, n *notification.Notification) error
}

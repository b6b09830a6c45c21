package notification

import (
	"errors"
	"fmt"
	"time"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewAssignmentNotification constructor")

// The item name is inserted verbatim, quotes and backslashes included.
const assignmentTemplate = "You’ve been assigned \"%s\" by %s. Please pick it up!"

// Notification is addressed to a single recipient and back-references an item.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	message   string
	itemID    kernel.UUID
	read      bool
	createdAt time.Time

	isConstructed bool
}

// NewAssignmentNotification tells taker that donor assigned them itemName.
func NewAssignmentNotification(
	id, taker, itemID kernel.UUID,
	itemName, donorDisplay string,
	createdAt time.Time,
) (*Notification, error) {
	if itemName == "" || donorDisplay == "" {
		return nil, errors.Join(
			requireText("itemName", itemName),
			requireText("donorDisplay", donorDisplay),
		)
	}

	return RestoreNotification(id, taker, itemID, fmt.Sprintf(assignmentTemplate, itemName, donorDisplay), false, createdAt)
}

// RestoreNotification rebuilds a notification from persistence.
func RestoreNotification(
	id, userID, itemID kernel.UUID,
	message string,
	read bool,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		userID.Validate(),
		itemID.Validate(),
		requireText("message", message),
		requireTime("createdAt", createdAt),
	); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		userID:        userID,
		message:       message,
		itemID:        itemID,
		read:          read,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

// UserID is the recipient.
func (n *Notification) UserID() kernel.UUID {
	return n.userID
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) ItemID() kernel.UUID {
	return n.itemID
}

func (n *Notification) Read() bool {
	return n.read
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func requireText(param, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func requireTime(param string, v time.Time) error {
	if v.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

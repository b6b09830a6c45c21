// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models assembled with SQL; they never load aggregates and
// take no part in the compare-and-set discipline of commands.
package queries

import (
	"context"
	"time"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRef is a user identifier with the email shown next to it.
// Email is empty when the user row is missing.
type UserRef struct {
	ID    kernel.UUID
	Email string
}

// ItemView is the read model of an item for listings.
type ItemView struct {
	ID                kernel.UUID
	Name              string
	Description       string
	Status            item.Status
	CreatedAt         time.Time
	PickupAvailableAt time.Time
	PostedBy          UserRef
	RequestedBy       []UserRef
	AssignedTo        *UserRef
	Version           int64
}

const itemViewsSQL = `
	SELECT
		i.id,
		i.name,
		i.description,
		i.status,
		i.created_at,
		i.version,
		i.posted_by,
		d.email,
		i.assigned_to,
		a.email
	FROM items i
	LEFT JOIN users d ON d.id = i.posted_by
	LEFT JOIN users a ON a.id = i.assigned_to
`

const itemRequestsSQL = `
	SELECT
		r.item_id,
		r.user_id,
		u.email
	FROM item_requests r
	LEFT JOIN users u ON u.id = r.user_id
`

// loadItemViews runs itemViewsSQL with an optional WHERE clause over the items
// table (alias i) and attaches requesters in first-request order.
func loadItemViews(
	ctx context.Context,
	db *gorm.DB,
	embargo time.Duration,
	where string,
	args ...any,
) ([]ItemView, error) {
	itemsSQL := itemViewsSQL
	requestsSQL := itemRequestsSQL
	if where != "" {
		itemsSQL += " WHERE " + where
		requestsSQL += " JOIN items i ON i.id = r.item_id WHERE " + where
	}
	itemsSQL += " ORDER BY i.created_at DESC, i.id"
	requestsSQL += " ORDER BY r.item_id, r.position"

	rows, err := db.WithContext(ctx).Raw(itemsSQL, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ItemView, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			view        ItemView
			status      int
			id          uuid.UUID
			postedBy    uuid.UUID
			donorEmail  *string
			assignedTo  *uuid.UUID
			assignEmail *string
		)

		if err = rows.Scan(
			&id,
			&view.Name,
			&view.Description,
			&status,
			&view.CreatedAt,
			&view.Version,
			&postedBy,
			&donorEmail,
			&assignedTo,
			&assignEmail,
		); err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.PostedBy, err = userRef(postedBy, donorEmail); err != nil {
			return nil, err
		}
		if assignedTo != nil {
			ref, refErr := userRef(*assignedTo, assignEmail)
			if refErr != nil {
				return nil, refErr
			}
			view.AssignedTo = &ref
		}

		view.Status = item.Status(status)
		view.CreatedAt = view.CreatedAt.UTC()
		view.PickupAvailableAt = view.CreatedAt.Add(embargo)
		view.RequestedBy = make([]UserRef, 0)

		index[id] = len(views)
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	reqRows, err := db.WithContext(ctx).Raw(requestsSQL, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer reqRows.Close()

	for reqRows.Next() {
		var (
			itemID uuid.UUID
			userID uuid.UUID
			email  *string
		)
		if err = reqRows.Scan(&itemID, &userID, &email); err != nil {
			return nil, err
		}

		pos, ok := index[itemID]
		if !ok {
			continue
		}
		ref, refErr := userRef(userID, email)
		if refErr != nil {
			return nil, refErr
		}
		views[pos].RequestedBy = append(views[pos].RequestedBy, ref)
	}
	if err = reqRows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func userRef(id uuid.UUID, email *string) (UserRef, error) {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return UserRef{}, err
	}
	ref := UserRef{ID: kid}
	if email != nil {
		ref.Email = *email
	}
	return ref, nil
}

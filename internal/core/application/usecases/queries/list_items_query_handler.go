package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListItemsQueryHandler reads items with donor, requester and assignee emails.
type ListItemsQueryHandler struct {
	db      *gorm.DB
	embargo time.Duration
}

// NewListItemsQueryHandler needs the pickup embargo to report when each item
// becomes eligible for pickup.
func NewListItemsQueryHandler(db *gorm.DB, embargo time.Duration) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db, embargo: embargo}
}

func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadItemViews(ctx, h.db, h.embargo, "")
}

package queries

import (
	"context"
	"time"

	"donation/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetItemQueryHandler struct {
	db      *gorm.DB
	embargo time.Duration
}

func NewGetItemQueryHandler(db *gorm.DB, embargo time.Duration) GetItemQueryHandler {
	return GetItemQueryHandler{db: db, embargo: embargo}
}

// Handle returns *errs.ObjectNotFoundError for unknown items.
func (h GetItemQueryHandler) Handle(ctx context.Context, query GetItemQuery) (ItemView, error) {
	if err := query.Validate(); err != nil {
		return ItemView{}, err
	}

	views, err := loadItemViews(ctx, h.db, h.embargo, "i.id = ?", query.ItemID().Bytes())
	if err != nil {
		return ItemView{}, err
	}
	if len(views) == 0 {
		return ItemView{}, errs.NewObjectNotFoundError("item", query.ItemID().String())
	}

	return views[0], nil
}

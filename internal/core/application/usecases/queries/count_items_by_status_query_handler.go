package queries

import (
	"context"

	"donation/internal/core/domain/model/item"

	"gorm.io/gorm"
)

type CountItemsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountItemsByStatusQueryHandler(db *gorm.DB) CountItemsByStatusQueryHandler {
	return CountItemsByStatusQueryHandler{db: db}
}

func (h CountItemsByStatusQueryHandler) Handle(ctx context.Context, query CountItemsByStatusQuery) (ItemStats, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		Status int
		Count  int64
	}
	if err := h.db.WithContext(ctx).
		Table("items").
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := ItemStats{item.Posted: 0, item.Picked: 0, item.Delivered: 0}
	for _, row := range rows {
		stats[item.Status(row.Status)] = row.Count
	}

	return stats, nil
}

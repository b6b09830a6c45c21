package itemrepo

import (
	"context"
	"errors"

	"donation/internal/adapters/out/postgres/pgerr"
	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements ItemRepository using GORM.
type GormItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormItemRepository creates a new GORM item repository.
func NewGormItemRepository(db *gorm.DB, tracker aggregateTracker) *GormItemRepository {
	return &GormItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly posted item together with its request list.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("item", aggregate.ID().String(), aggregate.Version(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes status, assignee and new requesters if the stored version still
// matches aggregate.Version(). Requesters are append-only, so existing rows are
// left alone. A lost row lock (deadlock or lock timeout) is reported as
// *errs.ConflictError, same as a stale version.
func (r *GormItemRepository) Update(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	columns := map[string]any{
		"status":  dto.Status,
		"version": gorm.Expr("version + 1"),
	}
	if dto.AssignedTo != nil {
		columns["assigned_to"] = *dto.AssignedTo
	}

	result := db.Model(&ItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(columns)
	if result.Error != nil {
		return r.lockConflict(aggregate, result.Error)
	}

	if result.RowsAffected == 0 {
		return r.missOrConflict(ctx, aggregate)
	}

	if len(dto.Requests) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Requests).Error; err != nil {
			return r.lockConflict(aggregate, err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an item by ID with requesters in first-request order.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	err := r.db.WithContext(ctx).
		Preload("Requests", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormItemRepository) lockConflict(aggregate *item.Item, err error) error {
	if pgerr.IsLockFailure(err) {
		return errs.NewConflictErrorWithCause("item", aggregate.ID().String(), aggregate.Version(), err)
	}
	return err
}

func (r *GormItemRepository) missOrConflict(ctx context.Context, aggregate *item.Item) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("item", aggregate.ID().String())
	}
	return errs.NewConflictError("item", aggregate.ID().String(), aggregate.Version())
}

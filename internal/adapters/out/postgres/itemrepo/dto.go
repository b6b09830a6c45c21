// Package itemrepo provides data transfer objects and mapping functions for item persistence.
// This package implements the repository pattern for the item domain aggregate, handling
// the conversion between domain entities and database representations.
package itemrepo

import (
	"time"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ItemDTO represents the database structure for persisting item aggregates.
// Version is the compare-and-set token: every successful update increments it.
type ItemDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name        string           `gorm:"type:varchar(255);not null"`
	Description string           `gorm:"type:text;not null;default:''"`
	PostedBy    uuid.UUID        `gorm:"type:uuid;not null;index"`
	AssignedTo  *uuid.UUID       `gorm:"type:uuid;index"`
	Status      int              `gorm:"type:smallint;not null;index"`
	CreatedAt   time.Time        `gorm:"not null;index"`
	Version     int64            `gorm:"not null;default:1"`
	Requests    []ItemRequestDTO `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// ItemRequestDTO is one entry of an item's request list. Position keeps the
// first-request order stable for display.
type ItemRequestDTO struct {
	ItemID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position int       `gorm:"type:int;not null"`
}

func (ItemRequestDTO) TableName() string {
	return "item_requests"
}

func fromDomain(it *item.Item) ItemDTO {
	itemID := it.ID().Bytes()

	var assignedTo *uuid.UUID
	if id := it.AssignedTo(); id != nil {
		raw := id.Bytes()
		assignedTo = &raw
	}

	requestedBy := it.RequestedBy()
	requests := make([]ItemRequestDTO, 0, len(requestedBy))
	for pos, id := range requestedBy {
		requests = append(requests, ItemRequestDTO{
			ItemID:   itemID,
			UserID:   id.Bytes(),
			Position: pos,
		})
	}

	return ItemDTO{
		ID:          itemID,
		Name:        it.Name(),
		Description: it.Description(),
		PostedBy:    it.PostedBy().Bytes(),
		AssignedTo:  assignedTo,
		Status:      int(it.Status()),
		CreatedAt:   it.CreatedAt(),
		Version:     it.Version(),
		Requests:    requests,
	}
}

// toDomain expects Requests to be sorted by Position.
func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	postedBy, err := kernel.UUIDFromBytes(dto.PostedBy[:])
	if err != nil {
		return nil, err
	}

	var assignedTo *kernel.UUID
	if dto.AssignedTo != nil {
		aID, assignErr := kernel.UUIDFromBytes((*dto.AssignedTo)[:])
		if assignErr != nil {
			return nil, assignErr
		}
		assignedTo = &aID
	}

	requestedBy := make([]kernel.UUID, 0, len(dto.Requests))
	for _, r := range dto.Requests {
		uID, reqErr := kernel.UUIDFromBytes(r.UserID[:])
		if reqErr != nil {
			return nil, reqErr
		}
		requestedBy = append(requestedBy, uID)
	}

	return item.RestoreItem(
		id,
		dto.Name,
		dto.Description,
		postedBy,
		requestedBy,
		assignedTo,
		item.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.Version,
	)
}

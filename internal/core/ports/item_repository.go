// Package ports defines the persistence contracts of the donation domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"donation/internal/core/domain/model/item"
	"donation/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for item aggregates.
type ItemRepository interface {
	// Add persists a newly posted item.
	Add(ctx context.Context, aggregate *item.Item) error

	// Update writes the item only if the stored version still equals
	// aggregate.Version(), and bumps the stored version by one.
	//
	// Errors:
	//   - *errs.ObjectNotFoundError when the item does not exist
	//   - *errs.ConflictError when another writer committed first
	Update(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item with its requesters in first-request order.
	// Returns *errs.ObjectNotFoundError when the item does not exist.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)
}

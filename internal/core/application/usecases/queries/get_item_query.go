package queries

import (
	"errors"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/guard"
)

var ErrGetItemQueryIsNotConstructed = errors.New(
	"GetItemQuery must be created via NewGetItemQuery constructor",
)

// GetItemQuery retrieves one item as it is rendered in listings. The HTTP layer
// uses it to answer lifecycle calls with the freshly committed state.
type GetItemQuery struct {
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetItemQuery(itemID kernel.UUID) (GetItemQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemQuery{}, err
	}
	return GetItemQuery{itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetItemQuery) Validate() error {
	return q.guard.Validate(ErrGetItemQueryIsNotConstructed)
}

func (q GetItemQuery) ItemID() kernel.UUID {
	return q.itemID
}

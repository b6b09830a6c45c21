package queries

import (
	"errors"

	"donation/internal/pkg/guard"
)

var ErrListItemsQueryIsNotConstructed = errors.New(
	"ListItemsQuery must be created via NewListItemsQuery constructor",
)

// ListItemsQuery retrieves a snapshot of every item, newest first.
//
// Example:
//
//	items, err := handler.Handle(ctx, NewListItemsQuery())
//	for _, it := range items {
//	    fmt.Printf("%s posted by %s: %s\n", it.Name, it.PostedBy.Email, it.Status)
//	}
type ListItemsQuery struct {
	guard guard.ConstructorGuard
}

func NewListItemsQuery() ListItemsQuery {
	return ListItemsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

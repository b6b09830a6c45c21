package queries

import (
	"errors"

	"donation/internal/core/domain/model/item"
	"donation/internal/pkg/guard"
)

var ErrCountItemsByStatusQueryIsNotConstructed = errors.New(
	"CountItemsByStatusQuery must be created via NewCountItemsByStatusQuery constructor",
)

// CountItemsByStatusQuery feeds the periodic item statistics.
type CountItemsByStatusQuery struct {
	guard guard.ConstructorGuard
}

func NewCountItemsByStatusQuery() CountItemsByStatusQuery {
	return CountItemsByStatusQuery{guard: guard.NewConstructorGuard()}
}

func (q CountItemsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrCountItemsByStatusQueryIsNotConstructed)
}

// ItemStats holds one count per status; statuses without items are present with 0.
type ItemStats map[item.Status]int64

// Total is the number of items across all statuses.
func (s ItemStats) Total() int64 {
	var total int64
	for _, n := range s {
		total += n
	}
	return total
}

package queries

import (
	"context"
	"errors"

	"donation/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetUserQueryHandler struct {
	db *gorm.DB
}

func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError for unknown users.
func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	var row struct {
		Email       string
		IsVolunteer bool
		ItemsGiven  int
		ItemsTaken  int
	}

	err := h.db.WithContext(ctx).
		Table("users").
		Select("email, is_volunteer, items_given, items_taken").
		Where("id = ?", query.UserID().Bytes()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserView{}, errs.NewObjectNotFoundError("user", query.UserID().String())
	}
	if err != nil {
		return UserView{}, err
	}

	return UserView{
		ID:          query.UserID(),
		Email:       row.Email,
		IsVolunteer: row.IsVolunteer,
		ItemsGiven:  row.ItemsGiven,
		ItemsTaken:  row.ItemsTaken,
	}, nil
}

package queries

import (
	"context"
	"errors"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthenticateUserQueryHandler verifies an email and password against the
// stored hash. It returns ErrInvalidCredentials without saying which part was wrong.
type AuthenticateUserQueryHandler struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
}

func NewAuthenticateUserQueryHandler(db *gorm.DB, hasher ports.PasswordHasher) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db, hasher: hasher}
}

func (h AuthenticateUserQueryHandler) Handle(ctx context.Context, query AuthenticateUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}

	var row struct {
		ID           uuid.UUID
		Email        string
		PasswordHash string
		IsVolunteer  bool
		ItemsGiven   int
		ItemsTaken   int
	}

	err := h.db.WithContext(ctx).
		Table("users").
		Select("id, email, password_hash, is_volunteer, items_given, items_taken").
		Where("email = ?", query.Email()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UserView{}, ErrInvalidCredentials
	}
	if err != nil {
		return UserView{}, err
	}

	err = h.hasher.Compare(row.PasswordHash, query.Password())
	if errors.Is(err, ports.ErrPasswordMismatch) {
		return UserView{}, ErrInvalidCredentials
	}
	if err != nil {
		return UserView{}, err
	}

	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return UserView{}, err
	}

	return UserView{
		ID:          id,
		Email:       row.Email,
		IsVolunteer: row.IsVolunteer,
		ItemsGiven:  row.ItemsGiven,
		ItemsTaken:  row.ItemsTaken,
	}, nil
}

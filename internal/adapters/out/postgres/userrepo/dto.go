// Package userrepo persists user accounts and their reputation counters.
package userrepo

import (
	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users table row. Email is stored normalized and is unique.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email       string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	IsVolunteer bool      `gorm:"not null;default:false"`
	Password    string    `gorm:"column:password_hash;type:varchar(255);not null"`
	ItemsGiven  int       `gorm:"not null;default:0"`
	ItemsTaken  int       `gorm:"not null;default:0"`
	Version     int64     `gorm:"not null;default:1"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		Email:       u.Email(),
		IsVolunteer: u.IsVolunteer(),
		Password:    u.PasswordHash(),
		ItemsGiven:  u.ItemsGiven(),
		ItemsTaken:  u.ItemsTaken(),
		Version:     u.Version(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(
		id,
		dto.Email,
		actor.KindFromFlag(dto.IsVolunteer),
		dto.Password,
		dto.ItemsGiven,
		dto.ItemsTaken,
		dto.Version,
	)
}

package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
	"donation/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// CreateUserCommand registers a participant. The password is hashed by the
// handler and never stored in clear.
//
// Example:
//
//	cmd, err := NewCreateUserCommand(kernel.NewUUID(), "dana@example.org", "s3cret-pass", true)
//	if err != nil {
//	    return err
//	}
//	u, err := handler.Handle(ctx, cmd)
type CreateUserCommand struct {
	userID      kernel.UUID
	email       string
	password    string
	isVolunteer bool

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(userID kernel.UUID, email, password string, isVolunteer bool) (CreateUserCommand, error) {
	if err := userID.Validate(); err != nil {
		return CreateUserCommand{}, err
	}
	if email == "" {
		return CreateUserCommand{}, errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		return CreateUserCommand{}, errs.NewValueIsRequiredError("password")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return CreateUserCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"password",
			fmt.Errorf("must be at least %d characters", MinPasswordLength),
		)
	}

	return CreateUserCommand{
		userID:      userID,
		email:       email,
		password:    password,
		isVolunteer: isVolunteer,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) UserID() kernel.UUID {
	return c.userID
}

func (c CreateUserCommand) Email() string {
	return c.email
}

func (c CreateUserCommand) Password() string {
	return c.password
}

func (c CreateUserCommand) IsVolunteer() bool {
	return c.isVolunteer
}

package queries

import (
	"errors"
	"strings"

	"donation/internal/pkg/errs"
	"donation/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthenticateUserQuery checks a login attempt and returns the matching profile.
type AuthenticateUserQuery struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserQuery(email, password string) (AuthenticateUserQuery, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := errors.Join(requireText("email", email), requireText("password", password)); err != nil {
		return AuthenticateUserQuery{}, err
	}
	return AuthenticateUserQuery{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

// Email is normalized the same way registration normalizes it.
func (q AuthenticateUserQuery) Email() string {
	return q.email
}

func (q AuthenticateUserQuery) Password() string {
	return q.password
}

func requireText(param, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

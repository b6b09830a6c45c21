package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a registered participant.
type User struct {
	id         kernel.UUID
	email      string
	kind       actor.Kind
	password   string
	itemsGiven int
	itemsTaken int
	version    int64

	isConstructed bool
}

// NewUser registers a participant with zeroed counters. Email is normalized to
// lower case and must be a bare address. passwordHash is opaque to the domain;
// it is whatever the configured password hasher produced.
func NewUser(id kernel.UUID, email string, kind actor.Kind, passwordHash string) (*User, error) {
	return RestoreUser(id, email, kind, passwordHash, 0, 0, 1)
}

// RestoreUser rebuilds a user from persistence.
func RestoreUser(
	id kernel.UUID,
	email string,
	kind actor.Kind,
	passwordHash string,
	itemsGiven, itemsTaken int,
	version int64,
) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setKind(kind),
		u.setPasswordHash(passwordHash),
		u.setCounters(itemsGiven, itemsTaken),
		u.setVersion(version),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

// DisplayName is what other users see, e.g. in assignment notifications.
func (u *User) DisplayName() string {
	return u.email
}

func (u *User) Kind() actor.Kind {
	return u.kind
}

func (u *User) IsVolunteer() bool {
	return u.kind == actor.Volunteer
}

// PasswordHash returns the stored credential hash.
func (u *User) PasswordHash() string {
	return u.password
}

func (u *User) ItemsGiven() int {
	return u.itemsGiven
}

func (u *User) ItemsTaken() int {
	return u.itemsTaken
}

func (u *User) Version() int64 {
	return u.version
}

// Actor returns the identity reference this user acts as.
func (u *User) Actor() (actor.Actor, error) {
	return actor.New(u.id, u.kind)
}

// RecordGiven counts one more delivered item donated by this user.
func (u *User) RecordGiven() {
	u.itemsGiven++
}

// RecordTaken counts one more delivered item received by this user.
func (u *User) RecordTaken() {
	u.itemsTaken++
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a bare address", email))
	}
	u.email = email
	return nil
}

func (u *User) setKind(kind actor.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	u.kind = kind
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.password = hash
	return nil
}

func (u *User) setCounters(given, taken int) error {
	if given < 0 || taken < 0 {
		return errs.NewValueIsOutOfRangeError("counters", fmt.Sprintf("%d/%d", given, taken), 0, "unbounded")
	}
	u.itemsGiven = given
	u.itemsTaken = taken
	return nil
}

func (u *User) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}
	u.version = version
	return nil
}

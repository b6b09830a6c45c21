package ports

import "errors"

// ErrPasswordMismatch is returned by PasswordHasher.Compare when the password
// does not match the hash.
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordHasher turns passwords into stored hashes and checks them later.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns ErrPasswordMismatch for a wrong password.
	Compare(hash, password string) error
}

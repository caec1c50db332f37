// Package password hashes account passwords with bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shiguang/internal/ports"
)

// ErrMismatch is returned when a password does not match its hash.
var ErrMismatch = errors.New("password does not match")

// Bcrypt implements ports.PasswordHasher.
type Bcrypt struct {
	cost int
}

// Ensure Bcrypt implements PasswordHasher
var _ ports.PasswordHasher = (*Bcrypt)(nil)

// NewBcrypt returns a hasher using cost, or bcrypt.DefaultCost when cost is 0.
func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares password with hash.
func (b *Bcrypt) Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

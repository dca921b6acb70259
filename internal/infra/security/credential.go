// Package security hashes and verifies account passwords.
package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 12

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// Credential turns passwords into salted hashes and checks them.
type Credential interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type BcryptCredential struct {
	cost int
}

// NewBcryptCredential uses cost, or DefaultCost when cost is outside bcrypt's range.
func NewBcryptCredential(cost int) *BcryptCredential {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptCredential{cost: cost}
}

func (c *BcryptCredential) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares in constant time. Malformed hashes never verify.
func (c *BcryptCredential) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	vo "banking/internal/domain/user/valueobjects"
)

// BcryptPasswordHasher implements user.PasswordHasher and user.PasswordRehasher
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost when cost is out of range
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash rejects inputs bcrypt would silently truncate
func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	if len(password) > vo.DefaultPasswordMaxBytes {
		return "", fmt.Errorf("password exceeds %d bytes", vo.DefaultPasswordMaxBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify returns the same error for a wrong password and a malformed hash
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// NeedsRehash reports hashes stored with a lower cost than the configured one.
// Unparseable hashes are left alone; they never verify anyway.
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	return cost < h.cost
}

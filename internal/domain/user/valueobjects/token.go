package valueobjects

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"banking/internal/shared/errors"
)

// tokenBytes is the entropy of a verification token before hex encoding
const tokenBytes = 32

// Token is a one-time secret sent to the user, e.g. for email verification.
// Only the SHA-256 hash is persisted; the plain value leaves the system once, by mail.
type Token struct {
	value string
	hash  string
}

// GenerateToken creates a new random token
func GenerateToken() (*Token, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random token: %w", err)
	}

	value := hex.EncodeToString(bytes)
	return &Token{
		value: value,
		hash:  HashToken(value),
	}, nil
}

// ParseToken validates a token received from a client
func ParseToken(value string) (*Token, error) {
	if len(value) != tokenBytes*2 || !isHexString(value) {
		return nil, errors.NewValidationError("invalid token format")
	}

	return &Token{
		value: value,
		hash:  HashToken(value),
	}, nil
}

// Value returns the plain token
func (t *Token) Value() string {
	return t.value
}

// Hash returns the hex encoded SHA-256 of the token
func (t *Token) Hash() string {
	return t.hash
}

// HashToken returns the hex encoded SHA-256 of a plain token
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func isHexString(s string) bool {
	for _, char := range s {
		if !((char >= '0' && char <= '9') || (char >= 'a' && char <= 'f') || (char >= 'A' && char <= 'F')) {
			return false
		}
	}
	return true
}

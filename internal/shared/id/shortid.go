// Package id generates Stripe-style external identifiers such as "usr_xK9mP2vL3nQa".
// Internal numeric IDs never leave the service; these do.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	// MaxLength bounds Generate so callers cannot request unbounded allocations
	MaxLength = 64
)

// PrefixUser marks user identifiers
const PrefixUser = "usr"

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if length > MaxLength {
		return "", fmt.Errorf("short ID length %d exceeds %d", length, MaxLength)
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return FormatWithPrefix(prefix, id), nil
}

// FormatWithPrefix adds a prefix to an existing short ID.
func FormatWithPrefix(prefix, shortID string) string {
	if shortID == "" {
		return ""
	}
	return prefix + "_" + shortID
}

// ParsePrefixedID splits a prefixed ID at the first underscore.
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	prefix, shortID, ok := strings.Cut(prefixedID, "_")
	if !ok {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return prefix, shortID, nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

// NewUserSID generates a new user SID; it matches user.ShortIDGenerator.
func NewUserSID() (string, error) {
	return GenerateWithPrefix(PrefixUser, DefaultLength)
}

// IsValidUserSID reports whether s looks like a SID produced by NewUserSID.
func IsValidUserSID(s string) bool {
	if ValidatePrefix(s, PrefixUser) != nil {
		return false
	}
	_, shortID, _ := ParsePrefixedID(s)
	if len(shortID) != DefaultLength {
		return false
	}
	for i := 0; i < len(shortID); i++ {
		if strings.IndexByte(alphabet, shortID[i]) < 0 {
			return false
		}
	}
	return true
}

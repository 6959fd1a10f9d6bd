package valueobjects

import (
	"crypto/subtle"
	"log/slog"
)

// Password holds a plain-text password that satisfied the policy.
// It is never persisted; hashing is the job of a user.PasswordHasher.
type Password struct {
	value string
}

// NewPassword validates the password against DefaultPasswordPolicy.
// Failures are reported as *InvalidPasswordError with the violated rule as reason.
func NewPassword(plainPassword string) (*Password, error) {
	return NewPasswordWithPolicy(plainPassword, nil)
}

// String returns the password exactly as given
func (p *Password) String() string {
	return p.value
}

// Equals performs an exact, case-sensitive comparison
func (p *Password) Equals(other *Password) bool {
	if p == nil || other == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.value), []byte(other.value)) == 1
}

// LogValue prevents the plain text from reaching logs
func (p *Password) LogValue() slog.Value {
	return slog.StringValue("[REDACTED]")
}

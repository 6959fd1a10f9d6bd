package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPasswordMinLength is the minimum number of characters
	DefaultPasswordMinLength = 8
	// DefaultPasswordMaxBytes matches the bcrypt input limit; bcrypt ignores anything past it
	DefaultPasswordMaxBytes = 72
	// DefaultSpecialCharacters is the set a password must draw at least one character from
	DefaultSpecialCharacters = `!@#$%^&*(),.?":{}|<>`
)

// Password policy violation reasons
const (
	ReasonPasswordEmpty     = "Password must be a non-empty string"
	ReasonPasswordUppercase = "Password must contain at least one uppercase letter"
	ReasonPasswordLowercase = "Password must contain at least one lowercase letter"
	ReasonPasswordNumber    = "Password must contain at least one number"
	ReasonPasswordSpecial   = "Password must contain at least one special character"
)

// PasswordPolicy defines the password validation rules
type PasswordPolicy struct {
	MinLength         int
	MaxBytes          int // 0 disables the ceiling
	RequireUppercase  bool
	RequireLowercase  bool
	RequireNumber     bool
	RequireSpecial    bool
	SpecialCharacters string
}

// DefaultPasswordPolicy returns the policy applied to every customer password
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:         DefaultPasswordMinLength,
		MaxBytes:          DefaultPasswordMaxBytes,
		RequireUppercase:  true,
		RequireLowercase:  true,
		RequireNumber:     true,
		RequireSpecial:    true,
		SpecialCharacters: DefaultSpecialCharacters,
	}
}

// Violation returns the reason for the first rule the password breaks, or ""
// when it satisfies the policy. Rules are checked in a fixed order: emptiness,
// minimum length, maximum length, uppercase, lowercase, number, special.
func (p *PasswordPolicy) Violation(password string) string {
	if password == "" {
		return ReasonPasswordEmpty
	}

	if utf8.RuneCountInString(password) < p.MinLength {
		return fmt.Sprintf("Password must be at least %d characters long", p.MinLength)
	}

	if p.MaxBytes > 0 && len(password) > p.MaxBytes {
		return fmt.Sprintf("Password must not exceed %d bytes", p.MaxBytes)
	}

	var (
		hasUppercase bool
		hasLowercase bool
		hasNumber    bool
		hasSpecial   bool
	)

	specials := p.SpecialCharacters
	if specials == "" {
		specials = DefaultSpecialCharacters
	}

	// ASCII classes only; accented letters do not satisfy the case rules
	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUppercase = true
		case char >= 'a' && char <= 'z':
			hasLowercase = true
		case char >= '0' && char <= '9':
			hasNumber = true
		case strings.ContainsRune(specials, char):
			hasSpecial = true
		}
	}

	if p.RequireUppercase && !hasUppercase {
		return ReasonPasswordUppercase
	}

	if p.RequireLowercase && !hasLowercase {
		return ReasonPasswordLowercase
	}

	if p.RequireNumber && !hasNumber {
		return ReasonPasswordNumber
	}

	if p.RequireSpecial && !hasSpecial {
		return ReasonPasswordSpecial
	}

	return ""
}

// ValidatePassword validates password against the policy
func (p *PasswordPolicy) ValidatePassword(password string) error {
	if reason := p.Violation(password); reason != "" {
		return NewInvalidPasswordError(reason)
	}
	return nil
}

// NewPasswordWithPolicy creates a new password value object with custom policy
func NewPasswordWithPolicy(plainPassword string, policy *PasswordPolicy) (*Password, error) {
	if policy == nil {
		policy = DefaultPasswordPolicy()
	}

	if err := policy.ValidatePassword(plainPassword); err != nil {
		return nil, err
	}

	return &Password{value: plainPassword}, nil
}

package valueobjects

import (
	"strings"

	"banking/internal/shared/errors"
)

// Role is the authorization role of a user
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var validRoles = map[Role]bool{
	RoleUser:      true,
	RoleModerator: true,
	RoleAdmin:     true,
}

// ParseRole parses a role case-insensitively; the empty string yields RoleUser
func ParseRole(value string) (Role, error) {
	normalized := Role(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return RoleUser, nil
	}

	if !validRoles[normalized] {
		return "", errors.NewValidationError("invalid role", value)
	}

	return normalized, nil
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	return validRoles[r]
}

// IsAdmin checks if the role is admin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

package valueobjects

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"banking/internal/shared/errors"
)

// MaxNameLength matches the width of the first_name/last_name columns
const MaxNameLength = 100

// nameRegex accepts letters of any script plus the separators found in real names
var nameRegex = regexp.MustCompile(`^[\p{L}\p{M} \-'.]+$`)

// Name represents one part of a person's name (first or last)
type Name struct {
	value string
}

// NewName creates a new Name value object with validation
func NewName(value string) (*Name, error) {
	normalized := strings.TrimSpace(value)

	if normalized == "" {
		return nil, errors.NewValidationError("name cannot be empty")
	}

	if utf8.RuneCountInString(normalized) > MaxNameLength {
		return nil, errors.NewValidationError("name cannot exceed 100 characters")
	}

	if !nameRegex.MatchString(normalized) {
		return nil, errors.NewValidationError("name contains invalid characters", value)
	}

	if strings.Contains(normalized, "  ") {
		return nil, errors.NewValidationError("name cannot contain consecutive spaces")
	}

	return &Name{value: normalized}, nil
}

// String returns the name as given, trimmed
func (n *Name) String() string {
	return n.value
}

// Equals compares names case-insensitively
func (n *Name) Equals(other *Name) bool {
	if n == nil || other == nil {
		return false
	}
	return strings.EqualFold(n.value, other.value)
}

// DisplayName returns the name in title case, e.g. "maria da silva" -> "Maria Da Silva"
func (n *Name) DisplayName() string {
	caser := cases.Title(language.Und)
	parts := strings.Fields(n.value)
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, " ")
}

// MarshalJSON implements json.Marshaler interface
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value)
}

// UnmarshalJSON implements json.Unmarshaler interface
func (n *Name) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.NewValidationError("name must be a string")
	}

	name, err := NewName(value)
	if err != nil {
		return err
	}

	*n = *name
	return nil
}

package valueobjects

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// MaxEmailLength is the RFC 5321 limit for a forward path
const MaxEmailLength = 254

// emailRegex accepts an RFC 5322 style local part followed by DNS labels of at most 63 characters
var emailRegex = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
	`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Email represents a normalized (trimmed, lowercased) email address value object
type Email struct {
	value string
}

// NewEmail creates a new Email value object with validation.
// Failures are reported as *InvalidEmailError carrying the raw input.
func NewEmail(value string) (*Email, error) {
	if value == "" {
		return nil, NewInvalidEmailError(value)
	}

	normalized := strings.ToLower(strings.TrimSpace(value))

	if !isValidEmail(normalized) {
		return nil, NewInvalidEmailError(value)
	}

	return &Email{value: normalized}, nil
}

func isValidEmail(email string) bool {
	if len(email) > MaxEmailLength {
		return false
	}
	if strings.HasPrefix(email, ".") || strings.HasSuffix(email, ".") {
		return false
	}
	if strings.Contains(email, "..") {
		return false
	}
	return emailRegex.MatchString(email)
}

// String returns the normalized email
func (e *Email) String() string {
	return e.value
}

// Equals checks if two email objects are equal
func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return false
	}
	return e.value == other.value
}

// Domain returns the domain part of the email (after the first @)
func (e *Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

// LocalPart returns the local part of the email (before the first @)
func (e *Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

// Masked returns the email with the local part hidden, e.g. "u***@example.com"
func (e *Email) Masked() string {
	local := e.LocalPart()
	if len(local) <= 1 {
		return local + "***@" + e.Domain()
	}
	return local[:1] + "***@" + e.Domain()
}

// LogValue keeps full addresses out of structured logs
func (e *Email) LogValue() slog.Value {
	if e == nil {
		return slog.StringValue("")
	}
	return slog.StringValue(e.Masked())
}

// MarshalJSON implements json.Marshaler interface
func (e Email) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value)
}

// UnmarshalJSON implements json.Unmarshaler interface.
// JSON null and non-string values are rejected as invalid emails.
func (e *Email) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return NewInvalidEmailError(string(data))
	}

	email, err := NewEmail(value)
	if err != nil {
		return err
	}

	*e = *email
	return nil
}

// Value implements driver.Valuer so the normalized form is what gets persisted
func (e Email) Value() (driver.Value, error) {
	return e.value, nil
}

// Scan implements sql.Scanner. NULL and non-text columns are rejected.
func (e *Email) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return NewInvalidEmailError("")
	default:
		return NewInvalidEmailError(fmt.Sprintf("%v", v))
	}

	email, err := NewEmail(raw)
	if err != nil {
		return err
	}

	*e = *email
	return nil
}

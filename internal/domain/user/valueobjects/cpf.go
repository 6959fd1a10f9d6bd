package valueobjects

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// CPFLength is the number of digits in a Brazilian individual taxpayer number
const CPFLength = 11

// CPF represents a Brazilian national tax ID (Cadastro de Pessoas Físicas).
// The stored value is always the 11 check-digit-validated digits.
type CPF struct {
	value string
}

// NewCPF creates a new CPF value object. Punctuation and any other non-digit
// characters are ignored, so "111.444.777-35" and "11144477735" are the same CPF.
// Failures are reported as *InvalidCPFError carrying the raw input.
func NewCPF(value string) (*CPF, error) {
	if value == "" {
		return nil, NewInvalidCPFError(value)
	}

	digits := stripNonDigits(value)
	if !isValidCPF(digits) {
		return nil, NewInvalidCPFError(value)
	}

	return &CPF{value: digits}, nil
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isValidCPF(digits string) bool {
	if len(digits) != CPFLength {
		return false
	}

	if allSameDigit(digits) {
		return false
	}

	if cpfCheckDigit(digits[:9]) != digits[9]-'0' {
		return false
	}

	return cpfCheckDigit(digits[:10]) == digits[10]-'0'
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// cpfCheckDigit computes the mod 11 check digit over the given prefix.
// Weights start at len(prefix)+1 and decrease to 2; remainders of 10 map to 0.
func cpfCheckDigit(prefix string) byte {
	weight := len(prefix) + 1
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}

	remainder := (sum * 10) % 11
	if remainder == 10 || remainder == 11 {
		remainder = 0
	}
	return byte(remainder)
}

// String returns the 11 raw digits
func (c *CPF) String() string {
	return c.value
}

// FormattedString renders the CPF as DDD.DDD.DDD-DD
func (c *CPF) FormattedString() string {
	return c.value[0:3] + "." + c.value[3:6] + "." + c.value[6:9] + "-" + c.value[9:11]
}

// Masked hides the first and last groups, e.g. "***.444.777-**"
func (c *CPF) Masked() string {
	return "***." + c.value[3:6] + "." + c.value[6:9] + "-**"
}

// Equals checks if two CPF objects hold the same digits
func (c *CPF) Equals(other *CPF) bool {
	if c == nil || other == nil {
		return false
	}
	return c.value == other.value
}

// LogValue keeps full tax IDs out of structured logs
func (c *CPF) LogValue() slog.Value {
	if c == nil {
		return slog.StringValue("")
	}
	return slog.StringValue(c.Masked())
}

// MarshalJSON implements json.Marshaler interface using the formatted form
func (c CPF) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.FormattedString())
}

// UnmarshalJSON implements json.Unmarshaler interface.
// JSON null and non-string values are rejected as invalid CPFs.
func (c *CPF) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return NewInvalidCPFError(string(data))
	}

	cpf, err := NewCPF(value)
	if err != nil {
		return err
	}

	*c = *cpf
	return nil
}

// Value implements driver.Valuer; the 11 raw digits are persisted
func (c CPF) Value() (driver.Value, error) {
	return c.value, nil
}

// Scan implements sql.Scanner. NULL and non-text columns are rejected.
func (c *CPF) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return NewInvalidCPFError("")
	default:
		return NewInvalidCPFError(fmt.Sprintf("%v", v))
	}

	cpf, err := NewCPF(raw)
	if err != nil {
		return err
	}

	*c = *cpf
	return nil
}

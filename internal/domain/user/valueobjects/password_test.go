package valueobjects

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPassword(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantReason string
	}{
		{name: "valid", input: "Valid123!"},
		{name: "valid longer", input: "Password123!"},
		{name: "exactly 72 bytes", input: "Aa1!" + strings.Repeat("x", 68)},
		{name: "multibyte letters count once", input: "Aé1!ébcd"},
		{name: "empty", input: "", wantReason: ReasonPasswordEmpty},
		{name: "weak", input: "weak", wantReason: "Password must be at least 8 characters long"},
		{name: "short", input: "short", wantReason: "Password must be at least 8 characters long"},
		{name: "seven runes", input: "Áb1!xyz", wantReason: "Password must be at least 8 characters long"},
		{name: "73 bytes", input: "Aa1!" + strings.Repeat("x", 69), wantReason: "Password must not exceed 72 bytes"},
		{name: "missing uppercase", input: "alllowercase123!", wantReason: ReasonPasswordUppercase},
		{name: "accented capitals are not ascii uppercase", input: "ÁÉÍÓÚ1!a", wantReason: ReasonPasswordUppercase},
		{name: "missing lowercase", input: "ALLUPPERCASE123!", wantReason: ReasonPasswordLowercase},
		{name: "missing number", input: "NoDigits!!", wantReason: ReasonPasswordNumber},
		{name: "missing special", input: "NoSpecial123", wantReason: ReasonPasswordSpecial},
		{name: "underscore is not special", input: "NoSpecial123_", wantReason: ReasonPasswordSpecial},
		{name: "length reported before classes", input: "abc", wantReason: "Password must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := NewPassword(tt.input)

			if tt.wantReason != "" {
				require.Error(t, err)
				assert.Nil(t, password)

				var invalidErr *InvalidPasswordError
				require.True(t, errors.As(err, &invalidErr))
				assert.Equal(t, tt.wantReason, invalidErr.Reason)
				assert.Equal(t, "Invalid password: "+tt.wantReason, err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, password.String())
		})
	}
}

func TestNewPassword_EverySpecialCharacterQualifies(t *testing.T) {
	for _, special := range DefaultSpecialCharacters {
		input := "Abcdef1" + string(special)
		t.Run(input, func(t *testing.T) {
			_, err := NewPassword(input)
			assert.NoError(t, err)
		})
	}
}

func TestPassword_Equals(t *testing.T) {
	upper, err := NewPassword("Abc12345!")
	require.NoError(t, err)
	lower, err := NewPassword("abc12345!A")
	require.NoError(t, err)
	same, err := NewPassword("Abc12345!")
	require.NoError(t, err)

	assert.True(t, upper.Equals(same))
	assert.False(t, upper.Equals(lower))
	assert.False(t, upper.Equals(nil))
}

func TestPassword_NeverLogged(t *testing.T) {
	password, err := NewPassword("Secret123!")
	require.NoError(t, err)

	var buf strings.Builder
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("login", "password", password)

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "Secret123!")
}

func TestPasswordPolicy_Custom(t *testing.T) {
	policy := &PasswordPolicy{
		MinLength:      12,
		RequireNumber:  true,
		RequireSpecial: false,
	}

	_, err := NewPasswordWithPolicy("short1", policy)
	var invalidErr *InvalidPasswordError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, "Password must be at least 12 characters long", invalidErr.Reason)

	password, err := NewPasswordWithPolicy("lowercase only 1", policy)
	require.NoError(t, err)
	assert.Equal(t, "lowercase only 1", password.String())

	// no byte ceiling when MaxBytes is zero
	_, err = NewPasswordWithPolicy(strings.Repeat("a", 200)+"1", policy)
	assert.NoError(t, err)
}

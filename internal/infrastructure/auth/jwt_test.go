package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "banking/internal/domain/user/valueobjects"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "banking", 15, 7)

	pair, err := svc.Generate("usr_abcdefghijkl", vo.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "usr_abcdefghijkl", claims.UserSID)
	assert.Equal(t, "usr_abcdefghijkl", claims.Subject)
	assert.Equal(t, vo.RoleAdmin, claims.Role)
	assert.Equal(t, "banking", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	refresh, err := svc.Verify(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.NotEqual(t, claims.ID, refresh.ID)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "banking", 15, 7)
	pair, err := svc.Generate("usr_abcdefghijkl", vo.RoleUser)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret", "banking", 15, 7)
		_, err := other.Verify(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("test-secret", "someone-else", 15, 7)
		_, err := other.Verify(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTService("test-secret", "banking", -1, 7)
		stale, err := expired.Generate("usr_abcdefghijkl", vo.RoleUser)
		require.NoError(t, err)
		_, err = svc.Verify(stale.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unsigned", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserSID: "usr_abcdefghijkl", Role: vo.RoleAdmin})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.Verify(raw)
		assert.Error(t, err)
	})
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"banking/internal/infrastructure/auth"
	"banking/internal/shared/constants"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils"
)

// AccessTokenVerifier validates bearer tokens; *auth.JWTService implements it
type AccessTokenVerifier interface {
	VerifyAccess(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier AccessTokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier AccessTokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing or malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := m.verifier.VerifyAccess(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid or expired token"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserSID, claims.UserSID)
		c.Set(constants.ContextKeyUserRole, claims.Role.String())

		c.Next()
	}
}

func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := m.verifier.VerifyAccess(token); err == nil {
				c.Set(constants.ContextKeyUserSID, claims.UserSID)
				c.Set(constants.ContextKeyUserRole, claims.Role.String())
			}
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}

	return strings.TrimSpace(token), true
}

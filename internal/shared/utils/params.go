package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"banking/internal/shared/errors"
	"banking/internal/shared/id"
)

// ParseSIDParam parses and validates a prefixed ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "sid").
// prefix is the expected SID prefix (e.g., id.PrefixUser).
// entityName is used in error messages (e.g., "user").
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderAPIVersion     = "X-API-Version"
	ContextKeyAPIVersion = "api_version"

	CurrentAPIVersion = 1
	MinAPIVersion     = 1
)

// vendorMediaType matches "application/vnd.banking.v1+json"
var vendorMediaType = regexp.MustCompile(`application/vnd\.banking\.v(\d+)\+json`)

// APIVersion resolves the requested version from X-API-Version ("1" or "v1"),
// then from a vendor media type in Accept, falling back to the current version.
// Out-of-range requests fall back as well; the resolved version is echoed back.
func APIVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		version := CurrentAPIVersion
		if v, ok := parseAPIVersion(strings.TrimPrefix(strings.ToLower(c.GetHeader(HeaderAPIVersion)), "v")); ok {
			version = v
		} else if m := vendorMediaType.FindStringSubmatch(c.GetHeader("Accept")); m != nil {
			if v, ok := parseAPIVersion(m[1]); ok {
				version = v
			}
		}

		c.Set(ContextKeyAPIVersion, version)
		c.Header(HeaderAPIVersion, strconv.Itoa(version))
		c.Next()
	}
}

// GetAPIVersion returns the version resolved by APIVersion, or the current one
func GetAPIVersion(c *gin.Context) int {
	if v, ok := c.Get(ContextKeyAPIVersion); ok {
		if version, ok := v.(int); ok {
			return version
		}
	}
	return CurrentAPIVersion
}

func parseAPIVersion(raw string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil || v < MinAPIVersion || v > CurrentAPIVersion {
		return 0, false
	}
	return v, true
}

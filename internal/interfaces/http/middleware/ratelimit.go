package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"banking/internal/infrastructure/ratelimit"
	"banking/internal/shared/constants"
	"banking/internal/shared/errors"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils"
)

const HeaderRateLimitLimit = "X-RateLimit-Limit"

// RateLimiter throttles requests per client IP within a scope such as "login"
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	rule    ratelimit.Rule
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, rule ratelimit.Rule, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		rule:    rule,
		logger:  logger,
	}
}

// Limit returns a Gin middleware that enforces the rule per client IP.
// A failing backend lets the request through rather than blocking all traffic.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.rule.Enabled() {
			c.Next()
			return
		}

		key := scope + ":ip:" + c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.rule)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable, allowing request", "error", err, "scope", scope)
			c.Next()
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.Itoa(rl.rule.Limit))

		if !allowed {
			rl.logger.Warnw("rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			c.Header("Retry-After", strconv.Itoa(int(rl.rule.Window.Seconds())))
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError(constants.ErrMsgTooManyRequests))
			c.Abort()
			return
		}

		c.Next()
	}
}

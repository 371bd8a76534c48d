// internal/middleware/ratelimit_middleware.go
package middleware

import (
	xerrors "fleetride-service/internal/pkg/errors"
	"fleetride-service/internal/pkg/ratelimit"
	"fleetride-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimit throttles an action per authenticated user. MUST be used
// after Auth(). A failing limiter backend lets the request through.
func RateLimit(limiter *ratelimit.Limiter, action string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := MustGetUserID(c)

		allowed, err := limiter.Allow(c.Request.Context(), action, userID)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.FromError(c, xerrors.E(xerrors.ErrRateLimited, "too many %s requests", action))
			return
		}
		c.Next()
	}
}

// internal/middleware/auth_middleware.go
package middleware

import (
	"strconv"
	"strings"

	"fleetride-service/internal/domain/user"
	"fleetride-service/internal/pkg/jwt"
	"fleetride-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	jwtManager *jwt.Manager
}

func NewAuthMiddleware(jwtManager *jwt.Manager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Auth validates the bearer token and stores the caller's identity on
// the request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authorization token")
			return
		}

		claims, err := m.jwtManager.Verify(token)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			response.Unauthorized(c, "invalid token subject")
			return
		}

		c.Set("user_id", userID)
		c.Set("role", user.Role(claims.Role))
		c.Next()
	}
}

// RequireRole admits only callers holding one of the given roles. MUST
// be used after Auth().
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "insufficient permissions")
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

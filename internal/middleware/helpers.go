// internal/middleware/helpers.go
package middleware

import (
	"fleetride-service/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// MustGetUserID gets the authenticated user id from context or panics.
// Routes behind Auth() always have it.
func MustGetUserID(c *gin.Context) int64 {
	id, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return id
}

// GetUserID gets the authenticated user id from context.
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetRole gets the caller's role from context.
func GetRole(c *gin.Context) user.Role {
	v, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, ok := v.(user.Role)
	if !ok {
		return ""
	}
	return role
}

// IsAdmin checks if the caller is an admin.
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == user.RoleAdmin
}

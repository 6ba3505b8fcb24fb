package middleware

import (
	"net/http"

	"aura/internal/domain"
	"aura/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole domain.UserRole, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if role.(string) != string(requiredRole) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", message)
			return
		}

		c.Next()
	}
}

// MasterOnly restricts a route to service providers.
func MasterOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleMaster, "Only master can add posts")
}

// StaffOnly restricts a route to content managers.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}

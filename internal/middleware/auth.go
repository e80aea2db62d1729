// Package middleware provides Gin HTTP middleware for authentication,
// authorization, rate limiting, security headers, and activity logging.
//
// Middleware ordering matters and is enforced in router.go:
//
//	Security → RateLimit → Auth → RBAC → Audit → Handler
//
// Security headers run first so they appear on all responses including errors.
// Rate limiting runs before auth to block brute-force attacks before any DB work.
// Auth populates the admin identity; RBAC reads from that context. Activity
// logging runs after RBAC so only successfully authorized mutations are recorded.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bondhu-gosthi/cms-backend/internal/auth"
	"github.com/bondhu-gosthi/cms-backend/internal/db/repositories"
)

// Context keys set by AuthMiddleware for downstream middleware and handlers.
const (
	AdminContextKey     = "admin"
	AdminIDContextKey   = "admin_id"
	AdminRoleContextKey = "admin_role"
)

// AuthMiddleware validates the bearer JWT and loads the acting admin into the
// request context. Deactivated admins are rejected even with a valid token.
func AuthMiddleware(adminRepo *repositories.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing authorization header",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must start with 'Bearer '",
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is empty",
			})
			return
		}

		claims, err := auth.ValidateJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		admin, err := adminRepo.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load admin",
			})
			return
		}
		if admin == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Admin not found",
			})
			return
		}
		if !admin.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Account is deactivated",
			})
			return
		}

		// The role comes from the database row, not the token, so role changes
		// take effect on the admin's next request without reissuing the token.
		c.Set(AdminContextKey, admin)
		c.Set(AdminIDContextKey, admin.ID)
		c.Set(AdminRoleContextKey, admin.Role)

		c.Next()
	}
}

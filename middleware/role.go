package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

func hasRole(allowed []string, role string) bool {
	return len(allowed) == 0 || slices.Contains(allowed, role)
}

// RequireRole narrows an authenticated group to the given roles. It must run
// after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(roles, c.GetString(ContextRole)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

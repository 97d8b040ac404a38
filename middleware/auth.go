package middleware

import (
	"net/http"
	"strings"

	"emjay/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// JWTAuthMiddleware accepts a bearer token carrying one of the given roles and
// stores its subject and role on the context.
func JWTAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if !hasRole(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set(ContextSubject, subject)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// JWTAuthAccountMiddleware admits back-office accounts.
func JWTAuthAccountMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware(utils.RoleAdmin, utils.RoleSupervisor)
}

func JWTAuthCustomerMiddleware() gin.HandlerFunc {
	return JWTAuthMiddleware(utils.RoleCustomer)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ecoport/internal/auth"
)

// AdminUsernameKey is the gin context key under which the authenticated
// admin's username is stored.
const AdminUsernameKey = "admin_username"

// AdminAuth returns middleware that requires a valid admin bearer token.
func AdminAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(AdminUsernameKey, claims.Subject)
		c.Next()
	}
}

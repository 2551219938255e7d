package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"vigor/pkg/utils"
)

// IdentityMiddleware extracts the caller's email from a bearer token when one
// is present. The coach endpoints rate-limit by email; an invalid or missing
// token is not fatal here because anonymous callers identify themselves in the
// request body instead.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)
		if err != nil || claims == nil {
			c.Next()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

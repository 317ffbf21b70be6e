package middleware

import (
	"net/http"
	"strings"

	"wholesale-be/internal/user"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	CtxUserID       = "user_id"
	CtxUserRole     = "role"
	CtxUserEmail    = "email"
	CtxCustomerCode = "customer_code"
)

// AuthRequired validates the bearer token and stores its claims on the
// gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := user.ParseJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxUserEmail, claims.Email)
		if claims.CustomerCode != nil {
			c.Set(CtxCustomerCode, *claims.CustomerCode)
		}

		c.Next()
	}
}

// RequireRoles rejects the request unless the authenticated user holds one
// of the given roles. Must run after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		c.Abort()
	}
}

// UserID returns the authenticated user's id from the gin context.
func UserID(c *gin.Context) int {
	return c.GetInt(CtxUserID)
}

// Role returns the authenticated user's role from the gin context.
func Role(c *gin.Context) string {
	return c.GetString(CtxUserRole)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rustico-backend/models"
	"rustico-backend/utils"
)

// ClaimsKey is the gin context key the verified token claims live under.
const ClaimsKey = "authClaims"

// Allow is the single place role policy lives. Actions not listed here
// are open to every authenticated user.
func Allow(role models.UserRole, action string) bool {
	switch action {
	case "users.manage", "guests.delete", "settings.manage":
		return role == models.UserRoleAdmin
	default:
		return true
	}
}

// RequireAuth verifies the Bearer token and stores its claims on the
// context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAction gates a route on the Allow policy. Must run after
// RequireAuth.
func RequireAction(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		if !Allow(models.UserRole(claims.Role), action) {
			utils.JSONError(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by RequireAuth, or nil.
func ClaimsFrom(c *gin.Context) *utils.Claims {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}

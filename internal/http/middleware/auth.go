package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Harshith-45/Assignment-Twilight-Bus/internal/services"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// TokenParser turns a bearer token into claims.
type TokenParser interface {
	ParseToken(raw string) (services.Claims, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// id and role on the context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := parser.ParseToken(strings.TrimSpace(raw))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// GetUserID returns the id stored by Auth, or 0.
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func GetUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}

func abortJSON(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}

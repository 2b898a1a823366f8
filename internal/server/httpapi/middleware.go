package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trackvers/trackvers/internal/common"
	"github.com/trackvers/trackvers/internal/logging"
	"github.com/trackvers/trackvers/internal/server/auth"
)

const (
	ctxUserIDKey = "userID"
	ctxRoleKey   = "role"
)

// UserIDFromContext returns the authenticated user id set by Auth, or "".
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// RoleFromContext returns the token role set by Auth, or "".
func RoleFromContext(c *gin.Context) string {
	return c.GetString(ctxRoleKey)
}

// RequestLogger logs one line per request with method, path, status and
// duration.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Auth validates the bearer token and stores user id and role in the gin
// context. Requests without a valid token are rejected with 401.
func Auth(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, role, err := auth.ParseToken(token, secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set(ctxRoleKey, role)
		c.Next()
	}
}

// AdminOnly requires the token role to be admin. Runs after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFromContext(c) != common.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

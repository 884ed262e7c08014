package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"albaniarides/internal/auth"
)

// ContextUserID is the gin context key under which RequireAuth stores the
// authenticated user's ID.
const ContextUserID = "user_id"

// RequireAuth returns middleware that validates the Bearer token and puts
// the caller's user ID on the request context. Requests without a valid
// token are rejected with 401.
func RequireAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireAuth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

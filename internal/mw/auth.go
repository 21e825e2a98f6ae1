package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/auth"
)

const userIDKey = "user_id"

// Auth requires a verified identity assertion on every request and
// stores the asserted user id in the gin context.
func Auth(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Fields(c.GetHeader("Authorization"))
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is missing"})
			return
		}

		userID, err := verifier.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token is invalid"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the verified user id set by Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

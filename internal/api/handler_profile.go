package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/mw"
	"station-telemetry-backend/internal/store"
)

// GetProfile handles GET /api/profile, returning the verified user's
// display fields and point balance.
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.store.GetUser(c.Request.Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
		"points":   user.Points,
	})
}

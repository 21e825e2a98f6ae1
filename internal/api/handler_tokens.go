package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/mw"
	"station-telemetry-backend/internal/store"
)

type issueTokenRequest struct {
	Points int64 `json:"points"`
}

// IssueToken handles POST /api/generate-qr. The plaintext secret is
// returned exactly once; only its hash is stored.
func (h *Handler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Points <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "points must be a positive integer"})
		return
	}

	secret, err := h.store.IssueToken(c.Request.Context(), mw.UserID(c), req.Points)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"qr_code": secret,
		"points":  req.Points,
	})
}

type redeemTokenRequest struct {
	QRContent string `json:"qr_content" binding:"required"`
}

// RedeemToken handles POST /api/validate-qr. A secret that matches no
// unredeemed token is rejected with a single error, whether it never
// existed or was already used.
func (h *Handler) RedeemToken(c *gin.Context) {
	var req redeemTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "qr_content required"})
		return
	}

	awarded, err := h.store.RedeemToken(c.Request.Context(), mw.UserID(c), req.QRContent)
	if err != nil {
		if errors.Is(err, store.ErrInvalidToken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"valid": false,
				"error": "invalid or already used QR code",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":          true,
		"points_awarded": awarded,
		"message":        "QR code validated successfully",
	})
}

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/mw"
)

// QueryMeasurements handles GET /api/measurements. The access check
// runs before any data is read: a user without a grant gets 403
// whether or not the station or its measurements exist.
func (h *Handler) QueryMeasurements(c *gin.Context) {
	stationID := c.Query("station_id")
	measurementType := c.Query("type")
	startParam := c.Query("start")
	endParam := c.Query("end")

	if stationID == "" || measurementType == "" || startParam == "" || endParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id, type, start and end are required"})
		return
	}

	start, err := strconv.ParseInt(startParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a unix timestamp"})
		return
	}
	end, err := strconv.ParseInt(endParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a unix timestamp"})
		return
	}

	userID := mw.UserID(c)
	allowed, err := h.store.HasStationAccess(c.Request.Context(), userID, stationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check station access"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access to this station"})
		return
	}

	points, err := h.store.QueryMeasurements(c.Request.Context(), stationID, measurementType,
		time.Unix(start, 0).UTC(), time.Unix(end, 0).UTC())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query measurements"})
		return
	}

	c.JSON(http.StatusOK, points)
}

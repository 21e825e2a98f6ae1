package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/store"
)

// ListStations handles GET /api/stations.
func (h *Handler) ListStations(c *gin.Context) {
	ids, err := h.store.ListStationIDs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve stations"})
		return
	}
	c.JSON(http.StatusOK, ids)
}

// ListMeasurementTypes handles GET /api/measurement-types.
func (h *Handler) ListMeasurementTypes(c *gin.Context) {
	c.JSON(http.StatusOK, store.MeasurementTypes)
}

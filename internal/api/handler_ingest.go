package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"station-telemetry-backend/internal/store"
)

type ingestMeasurement struct {
	Type       string   `json:"type"`
	Value      *float64 `json:"value"`
	RecordedAt string   `json:"recorded_at"`
}

type ingestRequest struct {
	StationID    string              `json:"station_id"`
	Location     string              `json:"location"`
	Measurements []ingestMeasurement `json:"measurements"`
}

// Timestamp layouts stations are known to send.
var recordedAtLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseRecordedAt(raw string) (time.Time, error) {
	for _, layout := range recordedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp format")
}

// Ingest handles POST /iot-data. The write path is station-originated
// and carries no identity assertion. A measurement missing its type,
// value or a parseable timestamp is skipped; the rest of the batch
// still lands. All accepted measurements persist atomically or not at
// all.
func (h *Handler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StationID == "" || len(req.Measurements) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id and measurements are required"})
		return
	}

	readings := make([]store.Reading, 0, len(req.Measurements))
	for _, m := range req.Measurements {
		if m.Type == "" || m.Value == nil {
			continue
		}
		recordedAt, err := parseRecordedAt(m.RecordedAt)
		if err != nil {
			continue
		}
		readings = append(readings, store.Reading{
			Type:       m.Type,
			Value:      *m.Value,
			RecordedAt: recordedAt,
		})
	}

	if err := h.store.IngestReadings(c.Request.Context(), req.StationID, req.Location, readings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store measurements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

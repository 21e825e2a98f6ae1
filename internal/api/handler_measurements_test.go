package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"station-telemetry-backend/internal/model"
	"station-telemetry-backend/internal/store"
)

func seedMeasurementFixtures(t *testing.T, testDB *gorm.DB) (start, end time.Time) {
	t.Helper()

	require.NoError(t, testDB.Create(&model.User{ID: 1, Username: "alice"}).Error)
	require.NoError(t, testDB.Create(&model.User{ID: 2, Username: "bob"}).Error)
	require.NoError(t, testDB.Create(&model.Station{StationID: "st-200", Location: "Lab"}).Error)
	require.NoError(t, testDB.Create(&model.UserStationAccess{UserID: 1, StationID: "st-200"}).Error)

	start = time.Date(2025, 5, 6, 12, 0, 0, 0, time.UTC)
	end = start.Add(time.Hour)
	require.NoError(t, testDB.Create(&[]model.Measurement{
		{StationID: "st-200", MeasurementType: "temperature", Value: 20.0, RecordedAt: start},
		{StationID: "st-200", MeasurementType: "temperature", Value: 21.0, RecordedAt: start.Add(30 * time.Minute)},
		{StationID: "st-200", MeasurementType: "temperature", Value: 22.0, RecordedAt: end},
	}).Error)
	return start, end
}

func measurementsURL(stationID, measurementType string, start, end time.Time) string {
	return fmt.Sprintf("/api/measurements?station_id=%s&type=%s&start=%d&end=%d",
		stationID, measurementType, start.Unix(), end.Unix())
}

func TestQueryMeasurementsReturnsPoints(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	start, end := seedMeasurementFixtures(t, testDB)

	w := doJSON(router, http.MethodGet, measurementsURL("st-200", "temperature", start, end),
		bearer(t, verifier, 1), "")
	require.Equal(t, http.StatusOK, w.Code)

	var points []store.Point
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
	require.Len(t, points, 3)
	assert.Equal(t, store.Point{X: start.Unix(), Y: 20.0}, points[0])
	assert.Equal(t, store.Point{X: end.Unix(), Y: 22.0}, points[2])
}

func TestQueryMeasurementsRequiresAllParams(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	start, end := seedMeasurementFixtures(t, testDB)
	token := bearer(t, verifier, 1)

	for _, path := range []string{
		fmt.Sprintf("/api/measurements?type=temperature&start=%d&end=%d", start.Unix(), end.Unix()),
		fmt.Sprintf("/api/measurements?station_id=st-200&start=%d&end=%d", start.Unix(), end.Unix()),
		fmt.Sprintf("/api/measurements?station_id=st-200&type=temperature&end=%d", end.Unix()),
		fmt.Sprintf("/api/measurements?station_id=st-200&type=temperature&start=%d", start.Unix()),
		"/api/measurements?station_id=st-200&type=temperature&start=abc&end=def",
	} {
		w := doJSON(router, http.MethodGet, path, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestQueryMeasurementsForbiddenWithoutGrant(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	start, end := seedMeasurementFixtures(t, testDB)

	// Bob has no grant for st-200, even though its measurements exist.
	w := doJSON(router, http.MethodGet, measurementsURL("st-200", "temperature", start, end),
		bearer(t, verifier, 2), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The same holds for a station that does not exist at all; access
	// is denied without confirming or denying existence.
	w = doJSON(router, http.MethodGet, measurementsURL("st-ghost", "temperature", start, end),
		bearer(t, verifier, 2), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestQueryMeasurementsEmptyWindow(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	start, _ := seedMeasurementFixtures(t, testDB)

	// A window before any data: valid request, empty array.
	w := doJSON(router, http.MethodGet,
		measurementsURL("st-200", "temperature", start.Add(-2*time.Hour), start.Add(-time.Hour)),
		bearer(t, verifier, 1), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListStationsAndMeasurementTypes(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	seedMeasurementFixtures(t, testDB)
	token := bearer(t, verifier, 1)

	w := doJSON(router, http.MethodGet, "/api/stations", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var stations []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stations))
	assert.Equal(t, []string{"st-200"}, stations)

	w = doJSON(router, http.MethodGet, "/api/measurement-types", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var types []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &types))
	assert.Equal(t, store.MeasurementTypes, types)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-telemetry-backend/internal/model"
)

func TestIssueTokenValidation(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	require.NoError(t, testDB.Create(&model.User{ID: 1, Username: "alice"}).Error)
	token := bearer(t, verifier, 1)

	for _, body := range []string{
		`{"points": 0}`,
		`{"points": -5}`,
		`{}`,
	} {
		w := doJSON(router, http.MethodPost, "/api/generate-qr", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}

	w := doJSON(router, http.MethodPost, "/api/generate-qr", token, `{"points": 10}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestTokenIssueAndRedeemLifecycle(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	require.NoError(t, testDB.Create(&model.User{ID: 1, Username: "alice"}).Error)
	require.NoError(t, testDB.Create(&model.User{ID: 2, Username: "bob"}).Error)
	require.NoError(t, testDB.Create(&model.User{ID: 3, Username: "carol"}).Error)

	// Alice issues a token worth 10 points.
	w := doJSON(router, http.MethodPost, "/api/generate-qr", bearer(t, verifier, 1), `{"points": 10}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var issued struct {
		Status string `json:"status"`
		QRCode string `json:"qr_code"`
		Points int64  `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issued))
	require.NotEmpty(t, issued.QRCode)
	assert.Equal(t, int64(10), issued.Points)

	// The stored record never exposes the plaintext secret.
	var stored model.RedemptionToken
	require.NoError(t, testDB.First(&stored).Error)
	assert.NotEqual(t, issued.QRCode, stored.ContentHash)

	// Bob redeems it.
	redeemBody := fmt.Sprintf(`{"qr_content": %q}`, issued.QRCode)
	w = doJSON(router, http.MethodPost, "/api/validate-qr", bearer(t, verifier, 2), redeemBody)
	require.Equal(t, http.StatusOK, w.Code)

	var redeemed struct {
		Valid         bool  `json:"valid"`
		PointsAwarded int64 `json:"points_awarded"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &redeemed))
	assert.True(t, redeemed.Valid)
	assert.Equal(t, int64(10), redeemed.PointsAwarded)

	// Bob's balance reflects the credit.
	w = doJSON(router, http.MethodGet, "/api/profile", bearer(t, verifier, 2), "")
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		Username string `json:"username"`
		Points   int64  `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "bob", profile.Username)
	assert.Equal(t, int64(10), profile.Points)

	// Carol replaying the same secret is rejected.
	w = doJSON(router, http.MethodPost, "/api/validate-qr", bearer(t, verifier, 3), redeemBody)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var rejected struct {
		Valid bool   `json:"valid"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rejected))
	assert.False(t, rejected.Valid)
}

func TestRedeemTokenValidation(t *testing.T) {
	router, testDB, verifier := setupTestServer(t)
	require.NoError(t, testDB.Create(&model.User{ID: 1, Username: "alice"}).Error)
	token := bearer(t, verifier, 1)

	w := doJSON(router, http.MethodPost, "/api/validate-qr", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An unknown secret gets the same rejection as a consumed one.
	w = doJSON(router, http.MethodPost, "/api/validate-qr", token, `{"qr_content": "never-issued"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileNotFound(t *testing.T) {
	router, _, verifier := setupTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/profile", bearer(t, verifier, 99), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"station-telemetry-backend/config"
	"station-telemetry-backend/internal/auth"
	"station-telemetry-backend/internal/mw"
	"station-telemetry-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, verifier auth.Verifier, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	requireAuth := mw.Auth(verifier)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// Station-originated write path: stations are not users, so no
	// identity assertion is required here.
	r.POST("/iot-data", handler.Ingest)

	api := r.Group("/api")
	api.Use(rateLimiter, requireAuth)
	{
		// The cached listings are identical for every authenticated
		// user, so caching after auth is safe.
		api.GET("/stations", caching, handler.ListStations)
		api.GET("/measurement-types", caching, handler.ListMeasurementTypes)

		api.GET("/measurements", handler.QueryMeasurements)
		api.GET("/profile", handler.GetProfile)

		api.POST("/generate-qr", handler.IssueToken)
		api.POST("/validate-qr", handler.RedeemToken)
	}

	return r
}

package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-allocation-backend/config"
	"hostel-allocation-backend/internal/mw"
	"hostel-allocation-backend/internal/notification"
	"hostel-allocation-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	// CORS for the form-driven SPA frontend.
	if len(cfg.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSOrigins
		r.Use(cors.New(corsCfg))
	} else {
		r.Use(cors.Default())
	}

	handler := NewHandler(s, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Listings are cheap but read-heavy; cached responses are flushed
	// by any successful mutation since occupancy is derived on read.
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)
	invalidate := mw.Invalidate(cacheStore)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", handler.Health)

		api.POST("/rooms", invalidate, handler.AddRoom)
		api.GET("/rooms", caching, handler.ListRooms)
		api.GET("/rooms/available", caching, handler.ListAvailableRooms)
		api.DELETE("/rooms/:id", invalidate, handler.RemoveRoom)

		api.POST("/allocations", invalidate, handler.Allocate)
		api.GET("/allocations", caching, handler.ListAllocations)
		api.GET("/allocations/room/:roomId", caching, handler.ListAllocationsByRoom)

		api.GET("/blocks", caching, handler.GetBlocks)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

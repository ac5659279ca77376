package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ecoport/internal/auth"
	"ecoport/internal/handler"
	"ecoport/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	QuoteHandler  *handler.QuoteHandler
	PickupHandler *handler.PickupHandler
	DriverHandler *handler.DriverHandler
	RatingHandler *handler.RatingHandler
	StatsHandler  *handler.StatsHandler
	AuthHandler   *handler.AuthHandler
	TokenManager  *auth.TokenManager
	RedisClient   *redis.Client
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	adminOnly := middleware.AdminAuth(deps.TokenManager)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", deps.AuthHandler.Login)
			authRoutes.GET("/me", adminOnly, deps.AuthHandler.Me)
		}

		// Pricing preview.
		v1.POST("/quotes", deps.QuoteHandler.GetQuote)

		// Pickup routes.
		pickups := v1.Group("/pickups")
		{
			pickups.POST("", deps.PickupHandler.CreatePickup)
			pickups.GET("", deps.PickupHandler.ListPickups)
			pickups.GET("/:id", deps.PickupHandler.GetPickup)
			pickups.PUT("/:id", adminOnly, deps.PickupHandler.UpdatePickup)
			pickups.POST("/:id/assign", adminOnly, deps.PickupHandler.AssignDriver)
			pickups.GET("/:id/nearby-drivers", adminOnly, deps.PickupHandler.NearbyDrivers)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("", adminOnly, deps.DriverHandler.CreateDriver)
			drivers.GET("", deps.DriverHandler.ListDrivers)
			drivers.GET("/:id", deps.DriverHandler.GetDriver)
			drivers.PUT("/:id/status", adminOnly, deps.DriverHandler.UpdateStatus)
			drivers.POST("/:id/location", deps.DriverHandler.UpdateLocation)
		}

		// Rating routes.
		ratings := v1.Group("/ratings")
		{
			ratings.POST("", deps.RatingHandler.CreateRating)
			ratings.GET("/:pickup_id", deps.RatingHandler.GetRating)
		}

		// Dashboard statistics.
		v1.GET("/stats", deps.StatsHandler.GetStats)
	}

	return router
}

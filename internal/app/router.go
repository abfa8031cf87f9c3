package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"journeys/internal/handler"
	"journeys/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	DataHandler    *handler.DataHandler
	BookingHandler *handler.BookingHandler
	ContactHandler *handler.ContactHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application

	// UploadsDir is served under /uploads for profile documents and images.
	UploadsDir string
	// AllowedOrigin restricts CORS; "*" during development.
	AllowedOrigin string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(corsMiddleware(deps.AllowedOrigin))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded documents and images.
	if deps.UploadsDir != "" {
		router.Static("/uploads", deps.UploadsDir)
	}

	api := router.Group("/api")
	{
		// Auth routes.
		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
			auth.POST("/reset-password", deps.AuthHandler.ResetPassword)
		}

		// Reference data and profile routes.
		data := api.Group("/data")
		{
			data.GET("/drivers", deps.DataHandler.GetDrivers)
			data.GET("/guides", deps.DataHandler.GetGuides)
			data.GET("/touristspots", deps.DataHandler.GetTouristSpots)
			data.GET("/touristspots/bycities", deps.DataHandler.GetSpotsByCities)
			data.GET("/profile/:email", deps.DataHandler.GetProfile)
			data.PUT("/profile/:email", deps.DataHandler.UpdateProfile)
			data.PUT("/verify-license/:email", deps.DataHandler.VerifyLicense)
		}

		// Booking routes.
		bookings := api.Group("/bookings")
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("/:userEmail", deps.BookingHandler.ListBookings)
			bookings.PUT("/start/:id", deps.BookingHandler.StartBooking)
			bookings.PUT("/cancel/:id", deps.BookingHandler.CancelBooking)
			bookings.PUT("/complete/:id", deps.BookingHandler.CompleteBooking)
		}

		// Contact relay.
		api.POST("/contact", deps.ContactHandler.SubmitContact)
	}

	return router
}

func corsMiddleware(origin string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = []string{origin}
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"}
	return cors.New(cfg)
}

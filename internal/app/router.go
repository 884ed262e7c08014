package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"albaniarides/internal/handler"
	"albaniarides/internal/middleware"
	"albaniarides/internal/web"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	RideHandler    *handler.RideHandler
	BookingHandler *handler.BookingHandler
	RatingHandler  *handler.RatingHandler
	CitiesHandler  *handler.CitiesHandler
	WebServer      *web.Server
	RequireAuth    gin.HandlerFunc
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Server-rendered pages.
	if deps.WebServer != nil {
		deps.WebServer.Register(router)
	}

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/verify", deps.AuthHandler.Verify)
			auth.POST("/email-login", deps.AuthHandler.EmailLogin)
			auth.GET("/callback", deps.AuthHandler.Callback)
		}

		cities := v1.Group("/cities")
		{
			cities.GET("", deps.CitiesHandler.List)
			cities.GET("/routes", deps.CitiesHandler.Routes)
		}

		v1.GET("/rides", deps.RideHandler.Search)
		v1.GET("/rides/:id", deps.RideHandler.Get)
		v1.GET("/ratings", deps.RatingHandler.List)

		// Authenticated routes. Mutations replay through the idempotency
		// cache, keyed per user.
		authed := v1.Group("")
		authed.Use(deps.RequireAuth)
		authed.Use(middleware.Idempotency(deps.RedisClient))
		{
			users := authed.Group("/users")
			{
				users.GET("/profile", deps.UserHandler.GetProfile)
				users.PUT("/profile", deps.UserHandler.UpdateProfile)
				users.GET("/rides", deps.RideHandler.ListMine)
			}

			rides := authed.Group("/rides")
			{
				rides.POST("", deps.RideHandler.Create)
				rides.PUT("/:id", deps.RideHandler.Update)
				rides.DELETE("/:id", deps.RideHandler.Cancel)
				rides.POST("/:id/complete", deps.RideHandler.Complete)
			}

			bookings := authed.Group("/bookings")
			{
				bookings.GET("", deps.BookingHandler.List)
				bookings.POST("", deps.BookingHandler.Create)
				bookings.DELETE("/:id", deps.BookingHandler.Cancel)
				bookings.GET("/:id/messages", deps.BookingHandler.ListMessages)
				bookings.POST("/:id/messages", deps.BookingHandler.SendMessage)
			}

			authed.POST("/ratings", deps.RatingHandler.Submit)
		}
	}

	return router
}

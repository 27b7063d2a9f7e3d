package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/patronbase/backend/internal/cache"
	"github.com/patronbase/backend/internal/config"
	"github.com/patronbase/backend/internal/handlers"
	"github.com/patronbase/backend/internal/middleware"
)

// RegisterRoutes configures all API routes. locationCache may be nil, in
// which case location reads go straight to the database.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, locationCache *cache.Cache) {
	// 60 requests per minute per IP, 10 auth attempts per minute per account
	rateLimiter := middleware.NewRateLimiter(60, 10, 10, 5)

	authHandler := handlers.NewAuthHandler(db, cfg)
	addressHandler := handlers.NewAddressHandler(db)
	locationHandler := handlers.NewLocationHandler(db, locationCache)

	api := router.Group("/api")

	api.POST("/register", rateLimiter.AuthRateLimiterMiddleware(), authHandler.Register)
	api.POST("/token", rateLimiter.AuthRateLimiterMiddleware(), authHandler.Login)
	api.GET("/token/verify", authHandler.VerifyToken)
	api.POST("/logout", authHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		authed.GET("/user", authHandler.CurrentUser)
		authed.GET("/addresses", addressHandler.ListAddresses)
		authed.POST("/addresses", addressHandler.CreateAddress)
		authed.PUT("/addresses/:id", addressHandler.UpdateAddress)
		authed.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}

	locations := api.Group("/locations")
	{
		locations.GET("/countries", locationHandler.ListCountries)
		locations.GET("/states", locationHandler.ListStates)
		locations.GET("/cities", locationHandler.ListCities)
	}
}

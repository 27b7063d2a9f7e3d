package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/patronbase/backend/internal/cache"
	"github.com/patronbase/backend/internal/config"
	"github.com/patronbase/backend/internal/database"
	"github.com/patronbase/backend/internal/database/migrations"
	"github.com/patronbase/backend/internal/jobs"
	"github.com/patronbase/backend/internal/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Location cache is optional; without redis the reads hit the database.
	var locationCache *cache.Cache
	if cfg.Redis.URL != "" {
		locationCache, err = cache.New(cfg.Redis.URL, 24*time.Hour)
		if err != nil {
			log.Printf("Warning: redis unavailable, location cache disabled: %v", err)
			locationCache = nil
		}
	}

	scheduler := gocron.NewScheduler(time.UTC)
	if err := jobs.SchedulePurgeDeletedProfiles(scheduler, db, cfg.ProfileRetentionDays); err != nil {
		log.Fatalf("Failed to schedule profile purge: %v", err)
	}
	scheduler.StartAsync()

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(router, db, cfg, locationCache)

	fmt.Printf("API server running on port %s\n", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

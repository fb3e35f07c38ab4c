package main

import (
	"log"

	"github.com/farmlink/farmlink-api/internal/cache"
	"github.com/farmlink/farmlink-api/internal/config"
	"github.com/farmlink/farmlink-api/internal/database"
	"github.com/farmlink/farmlink-api/internal/handlers"
	"github.com/farmlink/farmlink-api/internal/middleware"
	"github.com/farmlink/farmlink-api/internal/repository"
	"github.com/farmlink/farmlink-api/internal/services"
	"github.com/farmlink/farmlink-api/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env when present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.MigrateDatabase(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Job list cache; bypasses when Redis is not configured
	var redisAddr string
	if cfg.RedisHost != "" {
		redisAddr = cfg.RedisHost + ":" + cfg.RedisPort
	}
	listCache := cache.NewJobList(redisAddr)

	// Repositories
	db := database.GetDB()
	profileRepo := repository.NewProfileRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	// Services
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(profileRepo)
	jobService := services.NewJobService(jobRepo, profileRepo, listCache)
	appService := services.NewApplicationService(appRepo, jobRepo, listCache, cfg.EnforceTerminalStatus)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	jobHandler := handlers.NewJobHandler(jobService)
	appHandler := handlers.NewApplicationHandler(appService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "FarmLink API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	api.Use(middleware.ResolveIdentity(tokens, cfg.AllowHeaderIdentity))
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)

		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs", jobHandler.CreateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)

		api.POST("/apply", appHandler.Apply)
		api.GET("/applications", appHandler.ListApplications)
		api.PUT("/applications/:id", appHandler.UpdateStatus)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

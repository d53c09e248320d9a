package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"docpress/config"
	"docpress/handlers"
	"docpress/middleware"
	"docpress/models"
	"docpress/repositories"
	"docpress/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	cfg := config.Load()

	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Hierarchy store (Postgres)
	db, err := config.InitDB(cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}

	// Content store (Mongo)
	mongoDB, err := config.InitMongo(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}

	// Cache
	redisClient := config.InitRedis(cfg.RedisAddr, cfg.RedisDB)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	subjectRepo := repositories.NewSubjectRepository(db)
	topicRepo := repositories.NewTopicRepository(db)
	conceptRepo := repositories.NewConceptRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	contentRepo := repositories.NewContentRepository(mongoDB)
	contentCache := repositories.NewContentCache(redisClient)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	conceptService := services.NewConceptService(conceptRepo, topicRepo, subjectRepo, contentRepo, ratingRepo, contentCache, logger)
	topicService := services.NewTopicService(topicRepo, subjectRepo, conceptRepo, ratingRepo, conceptService, logger)
	subjectService := services.NewSubjectService(subjectRepo, topicRepo, topicService)
	ratingService := services.NewRatingService(ratingRepo, conceptRepo, topicRepo)
	browseService := services.NewBrowseService(subjectRepo, topicRepo, conceptRepo, ratingRepo, contentRepo, contentCache, logger)
	uploadService := services.NewUploadService()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	topicHandler := handlers.NewTopicHandler(topicService)
	conceptHandler := handlers.NewConceptHandler(conceptService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	browseHandler := handlers.NewBrowseHandler(browseService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Authenticated user routes
		me := v1.Group("/")
		me.Use(middleware.AuthMiddleware())
		{
			me.GET("/profile", authHandler.GetProfile)
			me.DELETE("/profile", authHandler.Deactivate)
			me.GET("/ratings", ratingHandler.GetMyRatings)
			me.POST("/concepts/:id/rate", ratingHandler.RateConcept)
			me.POST("/topics/:id/rate", ratingHandler.RateTopic)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(models.RoleAdmin)))
		{
			subjects := admin.Group("/subjects")
			{
				subjects.POST("", subjectHandler.Create)
				subjects.GET("", subjectHandler.GetList)
				subjects.GET("/:id", subjectHandler.Get)
				subjects.PUT("/:id", subjectHandler.Update)
				subjects.DELETE("/:id", subjectHandler.Delete)
			}

			topics := admin.Group("/topics")
			{
				topics.POST("", topicHandler.Create)
				topics.GET("", topicHandler.GetList)
				topics.GET("/:id", topicHandler.Get)
				topics.PUT("/:id", topicHandler.Update)
				topics.DELETE("/:id", topicHandler.Delete)
			}

			concepts := admin.Group("/concepts")
			{
				concepts.POST("", conceptHandler.Create)
				concepts.GET("", conceptHandler.GetList)
				concepts.GET("/:id", conceptHandler.Get)
				concepts.GET("/:id/content", conceptHandler.GetContent)
				concepts.PUT("/:id", conceptHandler.Update)
				concepts.POST("/:id/content", conceptHandler.AttachContent)
				concepts.POST("/:id/move", conceptHandler.Move)
				concepts.DELETE("/:id", conceptHandler.Delete)
			}

			admin.POST("/upload", uploadHandler.Upload)
		}

		// Public read surface
		v1.GET("/home", browseHandler.Home)
		v1.GET("/subjects/:subjectSlug", browseHandler.Subject)
		v1.GET("/topics/:topicSlug", browseHandler.Topic)
		v1.GET("/concepts/:conceptSlug", browseHandler.Concept)
		v1.GET("/search", conceptHandler.Search)
		v1.GET("/search/quick", browseHandler.QuickSearch)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	return http.ListenAndServe(":"+cfg.Port, router)
}

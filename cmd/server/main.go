package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gamebacklog/backend/internal/auth"
	"gamebacklog/backend/internal/config"
	"gamebacklog/backend/internal/handler"
	"gamebacklog/backend/internal/hub"
	"gamebacklog/backend/internal/library"
	"gamebacklog/backend/internal/logging"
	"gamebacklog/backend/internal/middleware"
	"gamebacklog/backend/internal/monitoring"
	"gamebacklog/backend/internal/search"
	"gamebacklog/backend/internal/storage"

	// Swagger imports
	_ "gamebacklog/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Game Backlog API
// @version         1.0
// @description     Personal game-backlog tracker: library, goals and external game search.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logging.New(cfg.LogLevel, cfg.LogFile, cfg.GinMode)

	if cfg.JWTSecret == "" || cfg.AuthPassword == "" {
		log.Fatal("JWT_SECRET and AUTH_PASSWORD must be set")
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AuthPassword), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash owner password")
	}

	monitoring.Init()

	adapter, err := openStorage(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open storage backend")
	}

	events := hub.New()
	store := library.New(adapter, log, library.WithSaveErrorHook(func(err error) {
		monitoring.PersistFailuresTotal.Inc()
		events.Publish(hub.Event{Type: "persist.warning", Payload: err.Error()})
	}))
	store.Initialize(context.Background())
	monitoring.LibraryGames.Set(float64(store.Len()))

	var provider search.Provider
	if cfg.RAWGAPIKey != "" {
		provider = search.NewRAWGClient(cfg.RAWGBaseURL, cfg.RAWGAPIKey, log)
		log.Info("Using RAWG search provider")
	} else {
		provider = search.NewMockProvider()
		log.Info("RAWG_API_KEY not set, using built-in search catalog")
	}

	h := &handler.Handler{
		Store:    store,
		Search:   provider,
		Hub:      events,
		Log:      log,
		Secret:   cfg.JWTSecret,
		PassHash: passHash,
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(monitoring.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/metrics", monitoring.Handler())

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/login", h.Login)
		}

		protected := apiV1.Group("")
		protected.Use(auth.Middleware(cfg.JWTSecret))
		{
			libraryRoutes := protected.Group("/library")
			{
				libraryRoutes.GET("", h.GetGames)
				libraryRoutes.POST("", h.AddGame)
				libraryRoutes.GET("/stats", h.GetStats)
				libraryRoutes.GET("/playing", h.GetCurrentlyPlaying)
				libraryRoutes.GET("/:id", h.GetGameByID)
				libraryRoutes.PATCH("/:id", h.UpdateGame)
				libraryRoutes.PUT("/:id/status", h.UpdateGameStatus)
				libraryRoutes.DELETE("/:id", h.DeleteGame)

				libraryRoutes.POST("/:id/goals", h.AddGoal)
				libraryRoutes.PUT("/:id/goals/:goalID/toggle", h.ToggleGoal)
				libraryRoutes.DELETE("/:id/goals/:goalID", h.RemoveGoal)
			}

			searchRoutes := protected.Group("/search")
			{
				searchRoutes.GET("", h.SearchGames)
				searchRoutes.GET("/:id", h.GetGameDetails)
			}

			protected.GET("/events", h.StreamEvents)
		}
	}

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// openStorage picks the persistence backend from configuration.
func openStorage(cfg *config.Config, log *logrus.Logger) (storage.Adapter, error) {
	switch cfg.StorageDriver {
	case "file", "":
		return storage.NewFileStore(cfg.StoragePath, log), nil
	case "sqlite":
		db, err := storage.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db, log)
	case "postgres":
		db, err := storage.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return storage.NewGormStore(db, log)
	case "redis":
		return storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

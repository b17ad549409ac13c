package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kavanaghpatrick/rent-fair-value/internal/config"
	"github.com/kavanaghpatrick/rent-fair-value/internal/handler"
	"github.com/kavanaghpatrick/rent-fair-value/internal/logger"
	"github.com/kavanaghpatrick/rent-fair-value/internal/repository"
	"github.com/kavanaghpatrick/rent-fair-value/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Infow("rent-fair-value server starting",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the valuation model artifact before accepting traffic.
	// The artifact is immutable afterwards.
	modelBytes, featureOrderBytes, err := loadArtifactBytes(cfg)
	if err != nil {
		log.Fatalw("failed to read model artifact", "error", err)
	}

	artifacts := repository.NewArtifactRepository()
	if err := artifacts.Load(modelBytes, featureOrderBytes); err != nil {
		log.Fatalw("failed to load model artifact", "error", err)
	}
	artifact := artifacts.Artifact()
	log.Infow("model artifact loaded",
		"trees", len(artifact.Trees),
		"features", len(artifact.FeatureOrder),
		"base_score", artifact.BaseScore,
	)

	// Valuation storage is optional; without it the server still values
	// properties but skips persistence and comparables.
	var store *repository.PostgresRepository
	if cfg.DatabaseEnabled() {
		store, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer store.Close()
		log.Info("connected to PostgreSQL valuation store")
	} else {
		log.Warn("no database configured - valuations will not be stored and comparables lookup is disabled")
	}

	// Initialize services
	predictor := service.NewPredictor(artifacts, store)

	// Initialize handlers
	valuationHandler := handler.NewValuationHandler(predictor, cfg.Comparables.DefaultLimit, cfg.Comparables.MaxLimit)
	feedbackHandler := handler.NewFeedbackHandler(predictor)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "healthy",
			"service":      "rent-fair-value",
			"version":      Version,
			"model_loaded": artifacts.Loaded(),
			"storage":      store != nil,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/valuations", valuationHandler.Valuate)
		apiV1.GET("/valuations/:id", valuationHandler.GetValuation)
		apiV1.POST("/comparables", valuationHandler.Comparables)
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Infow("starting server", "addr", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
}

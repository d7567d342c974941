package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yibu/backend/internal/cache"
	"github.com/yibu/backend/internal/config"
	"github.com/yibu/backend/internal/database"
	"github.com/yibu/backend/internal/handlers"
	"github.com/yibu/backend/internal/hashtag"
	"github.com/yibu/backend/internal/logger"
	"github.com/yibu/backend/internal/metrics"
	"github.com/yibu/backend/internal/middleware"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== YiBu hashtag service starting ===")

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.SugaredLog.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.SugaredLog.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis for trending response caching. The service works
	// without it, every trending read just hits the database.
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.WarnWithFields("Redis unavailable, trending cache disabled", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// Register Prometheus metrics
	metrics.Initialize()

	// Wire the hashtag core
	tracker := hashtag.NewTracker(database.DB)
	query := hashtag.NewQuery(database.DB, redisClient, cfg.TrendingCacheTTL)
	ingestor := hashtag.NewIngestor(tracker)

	// Start the rollover scheduler
	scheduler := hashtag.NewScheduler(database.DB, cfg.RolloverInterval)
	scheduler.Start()
	defer scheduler.Stop()

	h := handlers.NewHandlers(tracker, query, ingestor)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"} // Configure properly for production
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health and metrics
	r.GET("/health", func(c *gin.Context) {
		if err := database.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public hashtag routes
	api := r.Group("/api")
	{
		api.GET("/hashtags/trending", h.GetTrendingHashtags)
		api.GET("/hashtags/categories", h.GetHashtagCategories)
		api.GET("/hashtags/:name", h.GetHashtag)
		api.POST("/hashtags/track", h.TrackHashtags)
	}

	// Admin moderation routes (auth middleware to be mounted by the gateway)
	admin := r.Group("/api/admin")
	{
		admin.POST("/hashtags/:name/ban", h.BanHashtag)
		admin.POST("/hashtags/:name/unban", h.UnbanHashtag)
		admin.POST("/hashtags/:name/feature", h.FeatureHashtag)
		admin.POST("/hashtags/:name/unfeature", h.UnfeatureHashtag)
		admin.PUT("/hashtags/:name/category", h.SetHashtagCategory)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("Listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.SugaredLog.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("Forced shutdown", err)
	}

	logger.Log.Info("Server stopped")
}

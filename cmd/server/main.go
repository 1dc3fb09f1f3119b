package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arvella/stockroom/internal/api"
	"github.com/arvella/stockroom/internal/archive"
	"github.com/arvella/stockroom/internal/cache"
	"github.com/arvella/stockroom/internal/config"
	"github.com/arvella/stockroom/internal/repository/postgres"
	"github.com/arvella/stockroom/internal/service"
	"github.com/arvella/stockroom/internal/storage"
	"github.com/arvella/stockroom/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	catalogRepo := postgres.NewCatalogRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Reorder-suggestion cache (noop when disabled)
	suggestionCache, err := cache.NewSuggestionCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("suggestion cache unavailable, continuing without")
		suggestionCache = cache.NewNoopSuggestionCache()
	}

	// Order archive (noop when storage disabled)
	var archiver archive.Archiver = archive.NewNoopArchiver()
	if cfg.Storage.Enabled {
		objectStore, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("object storage unavailable, order archive disabled")
		} else {
			archiver = archive.NewOrderArchiver(objectStore)
		}
	}

	// Services
	services := &api.Services{
		Purchases:   service.NewPurchaseService(catalogRepo, orderRepo, archiver),
		Orders:      service.NewOrderService(orderRepo),
		Suggestions: service.NewSuggestionService(inventoryRepo, suggestionCache),
		Catalog:     service.NewCatalogService(catalogRepo),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}

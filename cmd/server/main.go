package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-gateway/internal/cache"
	"inventory-gateway/internal/config"
	"inventory-gateway/internal/database"
	"inventory-gateway/internal/events"
	"inventory-gateway/internal/handlers"
	"inventory-gateway/internal/middleware"
	"inventory-gateway/internal/routes"
	"inventory-gateway/internal/services"
	"inventory-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := buildLogger(cfg.Logging.Level)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()

	// Redis es opcional: sin él la estación cachea solo en memoria y
	// pierde la invalidación cruzada entre estaciones
	var redisDB *database.RedisDB
	if cfg.Redis.URL != "" {
		redisDB, err = database.NewRedisDB(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("Redis unavailable, running with local cache only", zap.Error(err))
			redisDB = nil
		}
	}

	client := upstream.NewClient(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Token,
		cfg.Upstream.UserID,
		cfg.Upstream.Role,
		cfg.Upstream.Timeout,
		logger,
	)

	var redisClient *redis.Client
	if redisDB != nil {
		redisClient = redisDB.Client
	}
	store := cache.NewSnapshotStore(redisClient, cfg.Cache.InventoryTTL, logger)
	hub := events.NewHub(logger)

	transferService := services.NewTransferService(client, store, hub, logger)
	inventoryService := services.NewInventoryService(client, store, hub, logger)
	importService := services.NewImportService(client, store, hub, logger)
	orderService := services.NewOrderService(client, store, hub, logger)
	locationService := services.NewLocationService(client, store, hub, logger)

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())

	healthChecker := middleware.NewHealthChecker(client, redisDB, logger)

	routes.SetupRoutes(router, routes.Handlers{
		Inventory: handlers.NewInventoryHandler(inventoryService, logger),
		Transfer:  handlers.NewTransferHandler(transferService, logger),
		Import:    handlers.NewImportHandler(importService, logger),
		Order:     handlers.NewOrderHandler(orderService, logger),
		Location:  handlers.NewLocationHandler(locationService, logger),
		Events:    handlers.NewEventsHandler(hub, logger),
	}, healthChecker)

	middleware.ServerInfo(cfg.Server.Port, cfg.Upstream.BaseURL, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	if redisDB != nil {
		redisDB.Close()
	}
	logger.Info("Server stopped")
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

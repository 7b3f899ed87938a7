package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"item-service/config"
	_ "item-service/docs" // Swagger docs
	"item-service/internal/httpserver"
	"item-service/internal/item/usecase"
	"item-service/internal/middleware"
	"item-service/pkg/log"
)

// @title       Item Service API
// @description CRUD API for items backed by PostgreSQL or Redis.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		FilePath:     cfg.Logger.FilePath,
		MaxSizeMB:    cfg.Logger.MaxSizeMB,
		MaxBackups:   cfg.Logger.MaxBackups,
		MaxAgeDays:   cfg.Logger.MaxAgeDays,
		Compress:     cfg.Logger.Compress,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Item Service...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Storage driver: %s", cfg.Storage.Driver)

	// 3. Storage
	repo, closeStorage, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to open storage: ", err)
		return
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Warnf(ctx, "Failed to close storage: %v", err)
		}
	}()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Repository:      repo,
		Middleware: middleware.Config{
			APIKeys:         cfg.Auth.APIKeys,
			RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
		},
		Cache: usecase.CacheConfig{
			Size: cfg.Cache.Size,
			TTL:  cfg.Cache.TTL,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

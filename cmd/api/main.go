// Package main is the entry point for the directory API service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/geodirhq/geodir/internal/cache"
	"github.com/geodirhq/geodir/internal/handlers"
	"github.com/geodirhq/geodir/internal/routes"
	"github.com/geodirhq/geodir/pkg/config"
	"github.com/geodirhq/geodir/pkg/database"
	"github.com/geodirhq/geodir/pkg/logger"
)

// Build information (set via ldflags).
var (
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, "json")
	log = log.WithService("api")

	log.Info("starting directory API",
		"version", version,
		"git_commit", gitCommit,
		"env", cfg.Env,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	log.Info("connected to database")

	// Pick the cache backend: Redis when configured, an in-process map
	// otherwise, nothing at all when caching is off.
	var (
		queryCache cache.Cache
		redisPing  handlers.RedisPinger
	)
	if cfg.Cache.Enabled {
		if cfg.Redis.URL != "" {
			redisCache, err := cache.NewRedisCache(cfg.Redis.URL, "geodir", cfg.Redis.MaxRetries)
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			defer redisCache.Close()
			queryCache = redisCache
			redisPing = redisCache
			log.Info("using redis cache")
		} else {
			queryCache = cache.NewMemoryCache(0)
			log.Info("using in-memory cache")
		}
	}

	router := routes.New(routes.Config{
		DB:     db,
		Config: cfg,
		Logger: log,
		Cache:  queryCache,
		Redis:  redisPing,
		BuildInfo: routes.BuildInfo{
			Version:   version,
			GitCommit: gitCommit,
		},
	})

	server := &http.Server{
		Addr:         cfg.API.Address(),
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.API.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
			if err := server.Close(); err != nil {
				return fmt.Errorf("forced shutdown error: %w", err)
			}
		}

		log.Info("server shutdown complete")
	}

	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/yx043749/beaver-farm/internal/api"
	"github.com/yx043749/beaver-farm/internal/config"
	"github.com/yx043749/beaver-farm/internal/factory"
	"github.com/yx043749/beaver-farm/internal/services/auth"
	redisstorage "github.com/yx043749/beaver-farm/internal/storage/redis"
	"github.com/yx043749/beaver-farm/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	if cfg.UsingDevSecret {
		logger.Warn("JWT_SECRET not set, signing tokens with the development secret")
	}

	authCfg := auth.DefaultConfig()
	authCfg.Secret = cfg.JWTSecret
	authCfg.TokenTTL = cfg.TokenTTL
	authCfg.IdleDays = cfg.IdleDays

	factoryCfg := factory.Config{
		AuthConfig:    authCfg,
		Logger:        logger,
		StorageType:   cfg.StorageType,
		UsersDir:      cfg.UsersDir,
		UserCacheSize: cfg.UserCacheSize,
		UserCacheTTL:  cfg.UserCacheTTL,
		CatalogPath:   cfg.CatalogPath,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == config.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	if err := run(logger, cfg, factoryCfg); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// run wires the application and serves until a shutdown signal or a server error
func run(logger *slog.Logger, cfg *config.Config, factoryCfg factory.Config) error {
	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("application ready",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.StorageType),
		slog.Int("user_cache_size", cfg.UserCacheSize),
		slog.Int("crops", len(app.Catalog.Crops())),
		slog.Int("recipes", len(app.Catalog.Recipes())),
	)

	// API routes first; the web router's fallback catches everything else
	router := mux.NewRouter()
	api.Register(router, api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		FarmController: app.FarmController,
	})
	web.Register(router, web.RouterConfig{
		Logger:    logger,
		StaticDir: cfg.StaticDir,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return server.Shutdown(context.Background())
	}
}

package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/yx043749/beaver-farm/internal/catalog"
	"github.com/yx043749/beaver-farm/internal/dependencies/clock"
	"github.com/yx043749/beaver-farm/internal/dependencies/idgen"
	"github.com/yx043749/beaver-farm/internal/engine"
	"github.com/yx043749/beaver-farm/internal/metrics"
	"github.com/yx043749/beaver-farm/internal/services/auth"
	"github.com/yx043749/beaver-farm/internal/services/farm"
	"github.com/yx043749/beaver-farm/internal/storage"
	"github.com/yx043749/beaver-farm/internal/storage/cached"
	"github.com/yx043749/beaver-farm/internal/storage/file"
	"github.com/yx043749/beaver-farm/internal/storage/memory"
	redisstorage "github.com/yx043749/beaver-farm/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Domain
	Catalog *catalog.Catalog
	Engine  *engine.Engine

	// Services
	AuthService    *auth.Service
	FarmController *farm.Controller

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service
	// Secret is required; zero-valued durations fall back to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// UsersDir is the directory holding one JSON document per user (required if StorageType is "file")
	UsersDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// UserCacheSize enables an in-process user cache of this many records when positive
	UserCacheSize int
	UserCacheTTL  time.Duration
	// CatalogPath loads crops and recipes from a YAML file instead of the bundled catalog
	CatalogPath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if cfg.AuthConfig.Secret == "" {
		return nil, errors.New("AuthConfig.Secret is required")
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	// Create storage based on type
	var (
		store   storage.Storage
		closers []io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeFile:
		if cfg.UsersDir == "" {
			return nil, errors.New("UsersDir required when StorageType is file")
		}
		fileStore, err := file.New(cfg.UsersDir)
		if err != nil {
			return nil, err
		}
		store = fileStore
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, errors.New("invalid StorageType: must be 'file', 'memory' or 'redis'")
	}

	if cfg.UserCacheSize > 0 {
		cache := cached.New(store, cfg.UserCacheSize, cfg.UserCacheTTL)
		cache.OnLookup = metrics.ObserveCacheLookup
		store = cache
	}

	app := newWithDependencies(store, clock.New(), idgen.New(), cat, cfg.AuthConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	ids idgen.Generator,
	cat *catalog.Catalog,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	eng := engine.New(cat)
	authService := auth.New(store, clk, authCfg, logger)
	farmController := farm.NewController(store, eng, clk, ids, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		IDs:            ids,
		Catalog:        cat,
		Engine:         eng,
		AuthService:    authService,
		FarmController: farmController,
	}
}

// Close releases connections held by the storage backend
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

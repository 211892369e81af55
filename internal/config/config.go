package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yx043749/beaver-farm/internal/validation"
)

// Storage backends
const (
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
	StorageTypeMemory = "memory"
)

// DevJWTSecret signs tokens when JWT_SECRET is unset outside production
const DevJWTSecret = "beaver-farm-dev-secret"

// Config holds the server configuration
type Config struct {
	Env      string `validate:"oneof=development production test"`
	Host     string
	Port     int    `validate:"min=1,max=65535"`
	LogLevel string `validate:"oneof=DEBUG INFO WARN ERROR"`

	JWTSecret string        `validate:"required"`
	TokenTTL  time.Duration `validate:"gt=0"`
	IdleDays  int           `validate:"min=1"`

	StorageType   string        `validate:"oneof=file redis memory"`
	UsersDir      string        `validate:"required_if=StorageType file"`
	RedisURL      string        `validate:"required_if=StorageType redis"`
	UserCacheSize int           `validate:"min=0"`
	UserCacheTTL  time.Duration `validate:"gte=0"`

	// CatalogPath overrides the bundled crop and recipe catalog when set
	CatalogPath string
	// StaticDir holds the browser frontend
	StaticDir string

	// UsingDevSecret is set when JWTSecret fell back to DevJWTSecret
	UsingDevSecret bool
}

// Load reads configuration from the environment, after loading any of the
// given .env files that exist (".env" when none are given)
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Host:        getEnv("HOST", ""),
		LogLevel:    strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		StorageType: strings.ToLower(getEnv("STORAGE_TYPE", StorageTypeFile)),
		UsersDir:    getEnv("USERS_DIR", "./users"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CatalogPath: getEnv("CATALOG_PATH", ""),
		StaticDir:   getEnv("STATIC_DIR", "internal/web/static"),
	}

	var err error
	if cfg.Port, err = getInt("PORT", 3005); err != nil {
		return nil, err
	}
	if cfg.IdleDays, err = getInt("IDLE_TIMEOUT_DAYS", 30); err != nil {
		return nil, err
	}
	if cfg.UserCacheSize, err = getInt("USER_CACHE_SIZE", 0); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.UserCacheTTL, err = getDuration("USER_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" && cfg.Env != "production" {
		cfg.JWTSecret = DevJWTSecret
		cfg.UsingDevSecret = true
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel converts LogLevel to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

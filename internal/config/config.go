package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend selectors.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	Janitor   JanitorConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port         string
	TemplateGlob string
	LogLevel     string
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	Backend   string
	RedisAddr string
	TTL       time.Duration
}

// JanitorConfig holds the schedule for periodic cache maintenance.
type JanitorConfig struct {
	CronSchedule string
}

// RateLimitConfig tunes the per-client request limiter.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getenvWithDefault("APP_PORT", "8080"),
			TemplateGlob: getenvWithDefault("TEMPLATE_GLOB", "web/templates/*.html"),
			LogLevel:     getenvWithDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			Backend:   getenvWithDefault("CACHE_BACKEND", CacheBackendMemory),
			RedisAddr: getenvWithDefault("REDIS_ADDR", "localhost:6379"),
			TTL:       getenvDuration("CACHE_TTL", time.Hour),
		},
		Janitor: JanitorConfig{
			CronSchedule: getenvWithDefault("CACHE_SWEEP_SCHEDULE", "*/30 * * * *"),
		},
		RateLimit: RateLimitConfig{
			Requests: getenvInt("RATE_LIMIT_REQUESTS", 60),
			Window:   getenvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("CACHE_BACKEND must be %q or %q", CacheBackendMemory, CacheBackendRedis)
	}

	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return errors.New("REDIS_ADDR must be provided when CACHE_BACKEND is redis")
	}

	if c.Cache.TTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}

	if c.Janitor.CronSchedule == "" {
		return errors.New("CACHE_SWEEP_SCHEDULE must be provided")
	}

	if c.RateLimit.Requests < 1 {
		return errors.New("RATE_LIMIT_REQUESTS must be at least 1")
	}

	if c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

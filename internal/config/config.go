package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/meal-browser-go/internal/constants"
)

type Config struct {
	Server   ServerConfig
	MealDB   MealDBConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Contact  ContactConfig
	Postgres PostgresConfig
	UI       UIConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateBurst       int
}

type MealDBConfig struct {
	BaseURL          string
	Timeout          time.Duration
	RateLimit        float64
	RateBurst        int
	BreakerThreshold int
	BreakerReset     time.Duration
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ContactConfig struct {
	StoreEnabled bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type UIConfig struct {
	DropStaleResponses bool
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimit:       getEnvFloat("SERVER_RATE_LIMIT", 50),
			RateBurst:       getEnvInt("SERVER_RATE_BURST", 100),
		},
		MealDB: MealDBConfig{
			BaseURL:          getEnv("MEALDB_BASE_URL", constants.APIConfig.MealDBBaseURL),
			Timeout:          getEnvDuration("MEALDB_TIMEOUT", constants.APIConfig.MealDBTimeout),
			RateLimit:        getEnvFloat("MEALDB_RATE_LIMIT", 10),
			RateBurst:        getEnvInt("MEALDB_RATE_BURST", 20),
			BreakerThreshold: getEnvInt("MEALDB_BREAKER_THRESHOLD", constants.CircuitBreakerConfig.FailureThreshold),
			BreakerReset:     getEnvDuration("MEALDB_BREAKER_RESET", constants.CircuitBreakerConfig.ResetTimeout),
		},
		Cache: CacheConfig{
			Enabled: getEnvBool("CACHE_ENABLED", false),
			TTL:     getEnvDuration("CACHE_TTL", constants.CacheTTL.Responses),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Contact: ContactConfig{
			StoreEnabled: getEnvBool("CONTACT_STORE_ENABLED", false),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "meals"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "meals"),
		},
		UI: UIConfig{
			DropStaleResponses: getEnvBool("UI_DROP_STALE_RESPONSES", true),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.MealDB.BaseURL == "" {
		return fmt.Errorf("MEALDB_BASE_URL is required")
	}
	if u, err := url.Parse(c.MealDB.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("MEALDB_BASE_URL must be an absolute URL: %q", c.MealDB.BaseURL)
	}
	if c.MealDB.Timeout < 0 {
		return fmt.Errorf("MEALDB_TIMEOUT must not be negative")
	}
	if c.MealDB.RateLimit < 0 || c.Server.RateLimit < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if c.Cache.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when CACHE_ENABLED is set")
	}
	if c.Contact.StoreEnabled && c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required when CONTACT_STORE_ENABLED is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("30s") or bare seconds ("30").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers for the durable key-value store.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	StorageDriver  string
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	ExchangeRateAPIURL  string
	ExchangeRateTimeout time.Duration
	ExchangeRateTTL     time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageMemory)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "spendwise:")
	viper.SetDefault("EXCHANGE_RATE_API_URL", "https://open.er-api.com/v6/latest")
	viper.SetDefault("EXCHANGE_RATE_TIMEOUT", "10s")
	viper.SetDefault("EXCHANGE_RATE_TTL", "6h")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = parseLogLevel(viper.GetString("LOG_LEVEL"))

	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageMemory)
		cfg.StorageDriver = StorageMemory
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.RedisKeyPrefix = viper.GetString("REDIS_KEY_PREFIX")

	cfg.ExchangeRateAPIURL = strings.TrimRight(viper.GetString("EXCHANGE_RATE_API_URL"), "/")
	cfg.ExchangeRateTimeout = durationOrDefault("EXCHANGE_RATE_TIMEOUT", 10*time.Second)
	cfg.ExchangeRateTTL = durationOrDefault("EXCHANGE_RATE_TTL", 6*time.Hour)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// durationOrDefault parses key as a positive duration such as "30m" or "6h".
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", raw)
		return slog.LevelInfo
	}
	return level
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

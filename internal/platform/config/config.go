package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Demo store backends.
const (
	DemoStoreMemory = "memory"
	DemoStoreRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Loader and fetch cache
	LoadMinInterval    time.Duration
	LoadDebounceWindow time.Duration
	LoadFetchTimeout   time.Duration
	FetchCacheTTL      time.Duration
	FetchCacheSize     int

	// Demo store
	DemoStore string
	RedisAddr string
	RedisDB   int

	RateLimit          string
	CORSAllowedOrigins []string
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "pg-console")
	viper.SetDefault("LOAD_MIN_INTERVAL", "5s")
	viper.SetDefault("LOAD_DEBOUNCE_WINDOW", "500ms")
	viper.SetDefault("LOAD_FETCH_TIMEOUT", "15s")
	viper.SetDefault("FETCH_CACHE_TTL", "2s")
	viper.SetDefault("FETCH_CACHE_SIZE", 16)
	viper.SetDefault("DEMO_STORE", DemoStoreMemory)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     viper.GetString("PGSQL_URL"),
		Port:            viper.GetString("PORT"),
		IsProduction:    viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:  viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		JWTIssuer:       viper.GetString("JWT_ISSUER"),
		FetchCacheSize:  viper.GetInt("FETCH_CACHE_SIZE"),
		DemoStore:       strings.ToLower(viper.GetString("DEMO_STORE")),
		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisDB:         viper.GetInt("REDIS_DB"),
		RateLimit:       viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:   viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint: viper.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "pg-console"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}
	if cfg.DemoStore != DemoStoreMemory && cfg.DemoStore != DemoStoreRedis {
		log.Printf("Warning: Invalid value for DEMO_STORE ('%s'). Defaulting to %s.\n", cfg.DemoStore, DemoStoreMemory)
		cfg.DemoStore = DemoStoreMemory
	}

	cfg.JWTExpiryDuration = durationOr("JWT_EXPIRY_DURATION", time.Hour)
	cfg.LoadMinInterval = durationOr("LOAD_MIN_INTERVAL", 5*time.Second)
	cfg.LoadDebounceWindow = durationOr("LOAD_DEBOUNCE_WINDOW", 500*time.Millisecond)
	cfg.LoadFetchTimeout = durationOr("LOAD_FETCH_TIMEOUT", 15*time.Second)
	cfg.FetchCacheTTL = durationOr("FETCH_CACHE_TTL", 2*time.Second)

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}

// durationOr parses key as a duration, falling back to def with a warning.
func durationOr(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

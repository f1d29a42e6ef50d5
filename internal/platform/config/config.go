package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	// Data store selection
	DBBackend         string
	SupabaseURL       string
	SupabaseKey       string
	DatabaseURL       string
	LocalPoolMaxConns int32
	RunMigrations     bool

	Port               string
	IsProduction       bool
	BaseURL            string
	CORSAllowedOrigins []string

	// Verifies access tokens issued by the auth provider.
	JWTSecret string

	// Sessions
	SessionBackend    string
	SessionTTL        time.Duration
	SessionCookieName string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	BusinessLoginRate string
	PostHogAPIKey     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("DB_BACKEND", "cloud")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_KEY", "")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("LOCAL_POOL_MAX_CONNS", 10)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL", "168h")
	viper.SetDefault("SESSION_COOKIE_NAME", "ent_sid")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("BUSINESS_LOGIN_RATE", "10-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		DBBackend:         strings.ToLower(strings.TrimSpace(viper.GetString("DB_BACKEND"))),
		SupabaseURL:       viper.GetString("SUPABASE_URL"),
		SupabaseKey:       viper.GetString("SUPABASE_KEY"),
		DatabaseURL:       viper.GetString("DATABASE_URL"),
		LocalPoolMaxConns: viper.GetInt32("LOCAL_POOL_MAX_CONNS"),
		RunMigrations:     viper.GetBool("RUN_MIGRATIONS"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		BaseURL:           strings.TrimRight(viper.GetString("BASE_URL"), "/"),
		JWTSecret:         viper.GetString("JWT_SECRET"),
		SessionBackend:    strings.ToLower(viper.GetString("SESSION_BACKEND")),
		SessionCookieName: viper.GetString("SESSION_COOKIE_NAME"),
		RedisAddr:         viper.GetString("REDIS_ADDR"),
		RedisPassword:     viper.GetString("REDIS_PASSWORD"),
		RedisDB:           viper.GetInt("REDIS_DB"),
		BusinessLoginRate: viper.GetString("BUSINESS_LOGIN_RATE"),
		PostHogAPIKey:     viper.GetString("POSTHOG_API_KEY"),
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	ttlStr := viper.GetString("SESSION_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 7 * 24 * time.Hour
		slog.Warn("Invalid SESSION_TTL, using default", "value", ttlStr, "default", ttl.String())
	}
	cfg.SessionTTL = ttl

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionCookieName == "" {
		cfg.SessionCookieName = "ent_sid"
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set. Using default insecure key.")
	}

	return cfg, nil
}

// AutoBootstrapAllowed reports whether local auto-enrollment may run.
func (c *Config) AutoBootstrapAllowed() bool {
	return c.DBBackend == "local" && !c.IsProduction
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/enterprise_ledger/internal/core/services"
	"github.com/SscSPs/enterprise_ledger/internal/handlers"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/SscSPs/enterprise_ledger/internal/platform/config"
	"github.com/SscSPs/enterprise_ledger/internal/platform/metrics"
	"github.com/SscSPs/enterprise_ledger/internal/platform/session"
	"github.com/SscSPs/enterprise_ledger/internal/repositories"
	"github.com/SscSPs/enterprise_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/enterprise_ledger/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Enterprise Ledger API
// @version 1.0
// @description Multi-organization revenue, expense and holding-payment ledger.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	stores := repositories.NewStoreFactory(cfg)
	if err := stores.Validate(); err != nil {
		logger.Error("Invalid data store configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stores.Close()
	logger.Info("Data store configured", slog.String("backend", string(stores.Backend())))

	if cfg.DBBackend == "local" && cfg.RunMigrations {
		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var redisClient *goredis.Client
	if cfg.SessionBackend == "redis" {
		redisClient, err = session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	loginLimiter, err := newLoginLimiter(cfg.BusinessLoginRate, redisClient)
	if err != nil {
		logger.Error("Invalid BUSINESS_LOGIN_RATE", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PostHogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		metrics.GinMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, services.NewServiceContainer(cfg), handlers.Dependencies{
		Sessions:     newSessionStore(cfg, redisClient),
		Stores:       stores,
		LoginLimiter: loginLimiter,
		Posthog:      posthogClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations opens a temporary database/sql connection through the pgx
// stdlib driver and applies the embedded migrations.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return err
	}
	return pgsql.RunMigrations(migrationDB, logger)
}

func newSessionStore(cfg *config.Config, redisClient *goredis.Client) session.Store {
	if redisClient != nil {
		return session.NewRedisStore(redisClient, cfg.SessionTTL)
	}
	slog.Warn("Using in-memory sessions; they are lost on restart and not shared between instances")
	return session.NewMemoryStore(cfg.SessionTTL)
}

// newLoginLimiter shares counters through Redis when it is configured so the
// limit holds across instances.
func newLoginLimiter(formatted string, redisClient *goredis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	if redisClient == nil {
		return limiter.New(memory.NewStore(), rate), nil
	}
	store, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "ent:login-limit"})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}

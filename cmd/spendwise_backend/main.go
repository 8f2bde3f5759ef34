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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/judeotine/SpendWise/internal/adapters/exchangerateapi"
	portsrepo "github.com/judeotine/SpendWise/internal/core/ports/repositories"
	"github.com/judeotine/SpendWise/internal/core/services"
	"github.com/judeotine/SpendWise/internal/handlers"
	"github.com/judeotine/SpendWise/internal/middleware"
	"github.com/judeotine/SpendWise/internal/platform/config"
	"github.com/judeotine/SpendWise/internal/platform/metrics"
	rediskv "github.com/judeotine/SpendWise/internal/repositories/cache/redis"
	"github.com/judeotine/SpendWise/internal/repositories/database/pgsql"
	"github.com/judeotine/SpendWise/internal/repositories/memory"
	"github.com/judeotine/SpendWise/pkg/database"
	"github.com/prometheus/client_golang/prometheus"
)

// @title SpendWise Currency API
// @version 1.0
// @description Currency conversion, rate cache and display currency for SpendWise.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := exchangerateapi.NewClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateTimeout, logger)

	repos, closeStore, err := newRepositoryProvider(ctx, cfg, fetcher, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
	serviceContainer := services.NewServiceContainer(cfg, repos, recorder)

	limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.Metrics(recorder),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, limiterInstance, prometheus.DefaultGatherer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newRepositoryProvider wires the durable store selected by STORAGE_DRIVER.
// The returned func releases whatever connection the store holds.
func newRepositoryProvider(ctx context.Context, cfg *config.Config, fetcher portsrepo.ExchangeRateFetcher, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool, fetcher), dbPool.Close, nil

	case config.StorageRedis:
		client, err := rediskv.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}
		return portsrepo.RepositoryProvider{
			KeyValueStore: rediskv.NewKeyValueStore(client, cfg.RedisKeyPrefix),
			RateFetcher:   fetcher,
		}, closeFn, nil

	case config.StorageMemory:
		logger.Warn("Using in-memory storage; rates and currency preference will not survive restarts")
		return portsrepo.RepositoryProvider{
			KeyValueStore: memory.NewKeyValueStore(),
			RateFetcher:   fetcher,
		}, func() {}, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPut, http.MethodOptions}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID", "Accept-Language")
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}

	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return corsCfg
}

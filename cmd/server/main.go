package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayash-Bera/goai/backend/internal/api"
	"github.com/Ayash-Bera/goai/backend/internal/api/handlers"
	"github.com/Ayash-Bera/goai/backend/internal/config"
	"github.com/Ayash-Bera/goai/backend/internal/database"
	"github.com/Ayash-Bera/goai/backend/internal/gemini"
	"github.com/Ayash-Bera/goai/backend/internal/generator"
	"github.com/Ayash-Bera/goai/backend/internal/health"
	"github.com/Ayash-Bera/goai/backend/internal/learning"
	"github.com/Ayash-Bera/goai/backend/internal/middleware"
	"github.com/Ayash-Bera/goai/backend/internal/migration"
	"github.com/Ayash-Bera/goai/backend/internal/projects"
	"github.com/Ayash-Bera/goai/backend/internal/storage"
	"github.com/Ayash-Bera/goai/backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const migrationsPath = "./migrations"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	utils.Logger = utils.NewLogger(cfg.Log.Level)
	logger := utils.GetLogger()

	dbConfig := &database.Config{
		RedisURL: cfg.Redis.URL,
		LogLevel: cfg.Log.Level,
	}
	if cfg.Storage.Backend == "postgres" {
		dbConfig.DatabaseURL = cfg.Database.URL
	}
	if cfg.Storage.Backend == "redis" {
		if err := cfg.ValidateRedis(); err != nil {
			logger.WithError(err).Fatal("Redis configuration validation failed")
		}
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if dbManager.DB != nil {
		runner := migration.NewRunner(dbManager, dbManager.DB, logger)
		if err := runner.RunMigrations(migrationsPath); err != nil {
			logger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	store, err := storage.New(cfg.Storage.Backend, cfg.Storage.Dir, dbManager.DB, dbManager.Redis)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}

	ctx := context.Background()

	learningSystem := learning.NewSystem(store, logger)
	if err := learningSystem.Load(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to load learning data")
	}

	provider := newProvider(cfg, logger)

	// a nil *database.Cache must not reach the interfaces below
	var cache generator.ResultCache
	var cacheStats handlers.CacheStats
	if dbManager.Redis != nil {
		redisCache := database.NewCache(dbManager.Redis, logger)
		cache = redisCache
		cacheStats = redisCache
	}

	gen := generator.NewService(provider, learningSystem, cache, generator.Options{
		UseLearning: cfg.Generation.UseLearning,
		CacheTTL:    cfg.Generation.CacheTTL,
	}, logger)

	checker := health.NewHealthChecker(logger, healthProbes(store, dbManager, provider)...)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit)
	done := make(chan struct{})
	go limiter.RunCleanup(done, time.Minute)

	gin.SetMode(cfg.Server.Mode)
	router := api.NewRouter(api.Dependencies{
		Generator:   gen,
		Learning:    learningSystem,
		Projects:    projects.NewRepository(store, logger),
		Health:      checker,
		CacheStats:  cacheStats,
		RateLimiter: limiter,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":     cfg.Server.Port,
			"storage":  cfg.Storage.Backend,
			"provider": gen.ProviderName(),
		}).Info("Starting API server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("API server listen error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.WithField("signal", sig.String()).Info("Shutting down server...")

	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("API server forced shutdown")
	}

	if err := learningSystem.Save(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to save learning data")
	}

	logger.Info("Server stopped")
}

// newProvider returns nil when the selected provider has no credentials, which
// sends every request down the fallback path.
func newProvider(cfg *config.Config, logger *logrus.Logger) generator.Provider {
	if !cfg.HasProvider() {
		logger.WithField("provider", cfg.Generation.Provider).Warn("No API key configured, generation will use the fallback project")
		return nil
	}

	switch cfg.Generation.Provider {
	case "openai":
		return generator.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger)
	default:
		retry := gemini.DefaultRetryConfig()
		retry.MaxRetries = cfg.Generation.MaxRetries

		client := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, logger).
			WithRetry(retry)
		return gemini.NewService(client, logger)
	}
}

func healthProbes(store storage.Store, dbManager *database.Manager, provider generator.Provider) []health.Probe {
	probes := []health.Probe{{
		Name: "storage",
		Check: func(ctx context.Context) error {
			if p, ok := store.(storage.Pinger); ok {
				return p.Ping(ctx)
			}
			_, err := store.Load(ctx, storage.LearningDataKey)
			if errors.Is(err, storage.ErrNotFound) {
				return nil
			}
			return err
		},
	}}

	if dbManager.Redis != nil {
		probes = append(probes, health.Probe{
			Name:     "redis",
			Check:    dbManager.PingRedis,
			Optional: true,
		})
	}

	probes = append(probes, health.Probe{
		Name:     "provider",
		Optional: true,
		Check: func(ctx context.Context) error {
			if provider == nil {
				return errors.New("no generation provider configured, using fallback")
			}
			return nil
		},
	})

	return probes
}

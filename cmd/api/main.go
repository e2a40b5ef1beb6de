package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carecost/predictor/internal/adapters/cache"
	"github.com/carecost/predictor/internal/adapters/database"
	"github.com/carecost/predictor/internal/adapters/history"
	"github.com/carecost/predictor/internal/adapters/storage"
	"github.com/carecost/predictor/internal/api/handlers"
	"github.com/carecost/predictor/internal/api/middleware"
	"github.com/carecost/predictor/internal/api/routes"
	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/providers"
	"github.com/carecost/predictor/internal/infrastructure/clients/postgres"
	"github.com/carecost/predictor/internal/infrastructure/clients/redis"
	"github.com/carecost/predictor/internal/infrastructure/observability"
	"github.com/carecost/predictor/internal/ml"
	"github.com/carecost/predictor/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis is optional; predictions fall back to uncached inference.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// PostgreSQL backs user accounts only; without it the API serves
	// anonymous predictions.
	var authHandler *handlers.AuthHandler
	var authMiddleware *middleware.AuthMiddleware
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unavailable, auth endpoints disabled")
	} else {
		defer pgClient.Close()
		userRepo := database.NewUserAdapter(pgClient)
		authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		authHandler = handlers.NewAuthHandler(authService)
		authMiddleware = middleware.NewAuthMiddleware(authService)
		log.Info().Msg("PostgreSQL client initialized")
	}

	trainer := ml.NewTrainer(ml.TrainerConfig{
		Seed: cfg.Model.Seed,
		Forest: ml.ForestConfig{
			NumTrees: cfg.Model.NumTrees,
			MaxDepth: cfg.Model.MaxDepth,
			Seed:     cfg.Model.Seed,
		},
		Boost: ml.BoostConfig{
			Rounds:       cfg.Model.BoostRounds,
			LearningRate: cfg.Model.LearningRate,
			Seed:         cfg.Model.Seed,
		},
		BoostingEnabled: cfg.Model.BoostingOn,
	})

	insightService := services.NewInsightService()
	predictionService := services.NewPredictionService(
		trainer,
		ml.NewGenerator(cfg.Model.Seed),
		cfg.Model.SampleCount,
		storage.NewModelStore(cfg.Model.ArtifactPath),
		storage.NewDatasetStore(cfg.Model.DatasetPath),
		history.NewMemoryAdapter(),
		insightService,
		cacheProvider,
		metrics,
	)
	reportService := services.NewReportService(predictionService, insightService)

	// Warm the model before accepting traffic so the first request does not
	// pay the training cost.
	if _, err := predictionService.Artifact(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load or train model")
	}

	predictionHandler := handlers.NewPredictionHandler(predictionService)
	insightHandler := handlers.NewInsightHandler(predictionService, insightService)
	reportHandler := handlers.NewReportHandler(reportService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(
		predictionHandler,
		insightHandler,
		authHandler,
		reportHandler,
		authMiddleware,
		cacheMiddleware,
		strings.Split(cfg.Server.AllowedOrigins, ","),
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}

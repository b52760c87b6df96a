package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ammahealth/explainer-backend/internal/adapters/cache"
	"github.com/ammahealth/explainer-backend/internal/adapters/database"
	"github.com/ammahealth/explainer-backend/internal/adapters/storage"
	"github.com/ammahealth/explainer-backend/internal/api/handlers"
	"github.com/ammahealth/explainer-backend/internal/api/routes"
	"github.com/ammahealth/explainer-backend/internal/application/services"
	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/openai"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/postgres"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/redis"
	s3client "github.com/ammahealth/explainer-backend/internal/infrastructure/clients/s3"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/clients/videoapi"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
	"github.com/ammahealth/explainer-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var metrics *observability.Metrics
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")

			metrics, err = observability.InitMetrics()
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to initialize metrics")
			}
		}
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	logger.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		// Continue without Redis, reuse lookups fall through to Postgres
		logger.Warn().Err(err).Msg("failed to initialize Redis client, caching disabled")
		redisClient = nil
	} else {
		defer redisClient.Close()
		logger.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters
	userAdapter := database.NewUserAdapter(pgClient)
	clinicalAdapter := database.NewClinicalAdapter(pgClient)

	baseMetadataAdapter := database.NewVideoMetadataAdapter(pgClient)
	var metadataAdapter repositories.VideoMetadataRepository
	if cacheProvider != nil {
		metadataAdapter = database.NewCachedVideoMetadataAdapter(baseMetadataAdapter, cacheProvider)
		logger.Info().Msg("video metadata adapter wrapped with caching layer")
	} else {
		metadataAdapter = baseMetadataAdapter
	}

	// Initialize storage backends
	localStore, err := storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize local storage")
	}

	primaryStore := localStore
	var fallbackStore providers.ObjectStore
	storageDir := cfg.Storage.LocalDir
	if cfg.Storage.Backend == "s3" {
		s3Client, err := s3client.NewClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to initialize S3 client, using local storage only")
		} else {
			primaryStore = storage.NewS3Store(s3Client, cfg.Storage.S3PublicURL)
			fallbackStore = localStore
			logger.Info().Str("bucket", cfg.Storage.S3Bucket).Msg("S3 storage initialized successfully")
		}
	}
	uploader := storage.NewUploader(primaryStore, fallbackStore)

	// Initialize providers
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize OpenAI client")
	}

	videoClient, err := videoapi.NewClient(&cfg.VideoAPI)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize video provider client")
	}

	// Initialize services
	scriptService := services.NewScriptService(openaiClient)
	recoveryService := services.NewRecoveryPlanService()

	if !cfg.Reuse.Enabled {
		logger.Warn().Msg("video reuse disabled, every request generates a fresh video")
	}

	generationService := services.NewVideoGenerationService(
		userAdapter,
		clinicalAdapter,
		metadataAdapter,
		scriptService,
		recoveryService,
		videoClient,
		uploader,
		cfg.Reuse.Enabled,
	)

	// Initialize handlers
	videoHandler := handlers.NewVideoHandler(generationService, metrics)

	// Set up router
	router := routes.NewRouter(videoHandler, storageDir, metrics)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.VideoAPI.PollTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}

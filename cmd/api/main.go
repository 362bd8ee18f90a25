package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/devtrails/bootcamp-directory/internal/adapters/cache"
	"github.com/devtrails/bootcamp-directory/internal/adapters/database"
	"github.com/devtrails/bootcamp-directory/internal/adapters/providers/geolocation"
	"github.com/devtrails/bootcamp-directory/internal/adapters/storage"
	"github.com/devtrails/bootcamp-directory/internal/api/handlers"
	"github.com/devtrails/bootcamp-directory/internal/api/routes"
	"github.com/devtrails/bootcamp-directory/internal/application/services"
	"github.com/devtrails/bootcamp-directory/internal/domain/providers"
	"github.com/devtrails/bootcamp-directory/internal/domain/repositories"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/postgres"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/clients/redis"
	"github.com/devtrails/bootcamp-directory/internal/infrastructure/observability"
	"github.com/devtrails/bootcamp-directory/pkg/config"
)

func main() {

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("bootcamp-directory", cfg.Environment)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; the API works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize adapters

	var bootcampRepo repositories.BootcampRepository = database.NewBootcampAdapter(pgClient)
	if cacheProvider != nil {
		bootcampRepo = database.NewCachedBootcampAdapter(bootcampRepo, cacheProvider)
		log.Info().Msg("bootcamp adapter wrapped with caching layer")
	}

	reviewRepo := database.NewReviewAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	fileStore, err := storage.NewLocalStore(cfg.Upload.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload storage")
	}

	var geocoder providers.GeolocationProvider
	switch cfg.Geocoder.Provider {
	case "mapquest":
		if cfg.Geocoder.APIKey == "" {
			log.Warn().Msg("GEOCODER_API_KEY is not set, using mock geocoder")
			geocoder = geolocation.NewMockProvider()
		} else {
			geocoder = geolocation.NewMapQuestProviderWithOptions(cfg.Geocoder.APIKey, cacheProvider, cfg.Geocoder.BaseURL, nil)
		}
	default:
		geocoder = geolocation.NewMockProvider()
	}

	// Initialize services

	uploadValidator := services.NewUploadValidator(cfg.Upload.MaxFileBytes)
	bootcampService := services.NewBootcampService(
		bootcampRepo,
		reviewRepo,
		geocoder,
		fileStore,
		uploadValidator,
		cfg.Cascade.DeleteReviews,
	)
	reviewService := services.NewReviewService(reviewRepo, bootcampRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers and routes

	router := routes.NewRouter(
		handlers.NewBootcampHandler(bootcampService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewUserHandler(userService),
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
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

	// Wait for interrupt signal for graceful shutdown
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

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"places-backend/internal/config"
	"places-backend/internal/handlers"
	"places-backend/internal/middleware"
	"places-backend/internal/models"
	"places-backend/internal/repository"
	"places-backend/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const configEnv = "PLACES_CONFIG"

func Run() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()

	// Initialize repositories
	var (
		placeRepo repository.PlaceRepository
		userRepo  repository.UserRepository
		seed      = true
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := connectDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare database")
		}
		defer db.Close()

		placeRepo = repository.NewPostgresPlaceRepository(db)
		userRepo = repository.NewPostgresUserRepository(db)
		seed = cfg.Storage.Seed
	default:
		placeRepo = repository.NewMemoryPlaceRepository()
		userRepo = repository.NewMemoryUserRepository()
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("Storage initialized")

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	if seed {
		if err := services.SeedDemoData(ctx, userService, placeRepo); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
		log.Info().Msg("Demo data seeded")
	}

	var images services.ImageStore
	if cfg.AWS.ImagesEnabled() {
		store, err := services.NewS3ImageStore(ctx, cfg.AWS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create image store")
		}
		images = store
	} else {
		log.Warn().Msg("No S3 bucket configured, image uploads disabled")
	}

	wsHub := services.NewWSHub()
	placeService := services.NewPlaceService(placeRepo, newGeocoder(cfg.Geocoding), images, wsHub)

	placeAuth := middleware.OptionalAuthMiddleware(userService)
	if cfg.Auth.RequireToken {
		placeAuth = middleware.AuthMiddleware(userService)
	}

	r := handlers.NewRouter(
		handlers.NewPlaceHandler(placeService),
		handlers.NewUserHandler(userService),
		handlers.NewWebSocketHandler(wsHub),
		placeAuth,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Hijacked WebSocket connections are not closed by Shutdown
	wsHub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func defaultConfigPath() string {
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	return "config.yaml"
}

// connectDatabase opens the pool, checks connectivity and applies migrations
func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection established")

	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func newGeocoder(cfg config.GeocodingConfig) services.Geocoder {
	if cfg.APIKey == "" {
		log.Warn().
			Float64("lat", cfg.FallbackLat).
			Float64("lng", cfg.FallbackLng).
			Msg("No geocoding API key configured, using fixed coordinates")
		return services.StaticGeocoder{Location: models.Location{Lat: cfg.FallbackLat, Lng: cfg.FallbackLng}}
	}
	return services.NewGoogleGeocoder(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
}

// setupLogger configures zerolog logger
func setupLogger(level string, pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

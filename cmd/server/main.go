package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"ecoport/internal/app"
	"ecoport/internal/auth"
	"ecoport/internal/config"
	"ecoport/internal/handler"
	"ecoport/internal/pricing"
	internalRedis "ecoport/internal/redis"
	"ecoport/internal/repository/postgres"
	"ecoport/internal/service"
)

func main() {
	// Load .env if present, then configuration from the environment.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	pickupRepo := postgres.NewPickupRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	// The single pricing engine instance backs both the preview endpoint and
	// the authoritative create path. Unknown multiplier values fall back to
	// 1.0 but are logged so a client/server enum drift is visible.
	engine := pricing.NewEngine(cfg.Pricing, pricing.WithUnknownValueHook(func(kind, value string) {
		log.Printf("pricing: unknown %s %q, using multiplier 1.0", kind, value)
	}))

	// Initialize services.
	notifier := service.NewNotificationService()
	pickupService := service.NewPickupService(pickupRepo, driverRepo, engine, cacheStore, notifier)
	assignmentService := service.NewAssignmentService(pickupRepo, driverRepo, locationStore, lockStore, cacheStore, notifier)
	driverService := service.NewDriverService(driverRepo, locationStore)
	ratingService := service.NewRatingService(ratingRepo, pickupRepo)
	statsService := service.NewStatsService(pickupRepo, cacheStore)

	// Initialize auth.
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize handlers.
	quoteHandler := handler.NewQuoteHandler(engine)
	pickupHandler := handler.NewPickupHandler(pickupService, assignmentService)
	driverHandler := handler.NewDriverHandler(driverService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	statsHandler := handler.NewStatsHandler(statsService)
	authHandler := handler.NewAuthHandler(tokenManager, cfg.Auth)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		QuoteHandler:  quoteHandler,
		PickupHandler: pickupHandler,
		DriverHandler: driverHandler,
		RatingHandler: ratingHandler,
		StatsHandler:  statsHandler,
		AuthHandler:   authHandler,
		TokenManager:  tokenManager,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

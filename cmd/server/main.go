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

	"journeys/internal/app"
	"journeys/internal/config"
	"journeys/internal/handler"
	"journeys/internal/mail"
	internalRedis "journeys/internal/redis"
	"journeys/internal/repository/postgres"
	"journeys/internal/service"
	"journeys/internal/storage"
)

func main() {
	// Load .env if present; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

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
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
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
	server, err := wireServer(db, redisClient, nrApp, cfg)
	if err != nil {
		log.Fatalf("failed to wire server: %v", err)
	}

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
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Initialize Redis-backed cache.
	spotCache := internalRedis.NewSpotCache(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	spotRepo := postgres.NewSpotRepository(db)
	txManager := postgres.NewTxManager(db)

	// Initialize document storage.
	documents, err := storage.NewLocalStore(cfg.App.UploadsDir, "/uploads")
	if err != nil {
		return nil, err
	}

	// Initialize services.
	mailer := mail.NewSMTPMailer(cfg.SMTP)
	notificationService := service.NewNotificationService(mailer, cfg.SMTP.Operator, cfg.App.FrontendURL)
	authService := service.NewAuthService(userRepo, notificationService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	bookingService := service.NewBookingService(bookingRepo, userRepo, spotRepo, spotCache, txManager, notificationService)
	profileService := service.NewProfileService(userRepo)
	dataService := service.NewDataService(userRepo, spotRepo, spotCache)
	contactService := service.NewContactService(notificationService)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	dataHandler := handler.NewDataHandler(dataService, profileService, documents)
	bookingHandler := handler.NewBookingHandler(bookingService)
	contactHandler := handler.NewContactHandler(contactService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		DataHandler:    dataHandler,
		BookingHandler: bookingHandler,
		ContactHandler: contactHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		UploadsDir:     cfg.App.UploadsDir,
		AllowedOrigin:  cfg.App.CORSOrigin,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}

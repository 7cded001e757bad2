package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arrivals-board/internal/infrastructure/config"
	"arrivals-board/internal/infrastructure/persistence"
	"arrivals-board/internal/interface/httpapi"
	"arrivals-board/internal/interface/provider"
	infraRepo "arrivals-board/internal/interface/repository"
	domainRepo "arrivals-board/internal/domain/repository"
	"arrivals-board/internal/usecase"
	"arrivals-board/pkg/logger"
	"arrivals-board/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Arrivals Board Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("arrivals")

	// Optional MongoDB connection for the notification journal
	var mongoClient *mongo.Client
	var journalRepo domainRepo.NotificationJournalRepository
	if cfg.MongoURI != "" {
		log.Info("Connecting to MongoDB")
		mongoClient, err = persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		db := persistence.GetDatabase(mongoClient, cfg.MongoDB)
		journalRepo = infraRepo.NewMongoJournalRepository(db)
	} else {
		log.Info("MONGODB_DSN not set, notification journal disabled")
	}

	// Optional PostgreSQL connection for airline reference data
	var airlineRepository domainRepo.AirlineRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = infraRepo.NewGormAirlineRepository(gormDB)
	} else {
		log.Info("POSTGRES_DSN not set, airline enrichment disabled")
	}

	// Schedule provider and sync pipeline
	decoder := provider.NewJSONArrayDecoder(log)
	scheduleProvider := provider.NewGeminiProvider(cfg.GeminiModel, cfg.AirportCode, cfg.AirportCity, decoder, log, m)
	normalizer := usecase.NewNormalizer(airlineRepository, log)

	notifier := infraRepo.NewPushNotifierRepository(cfg.NotifyEndpoint, cfg.NotifyToken, log)
	tracker := usecase.NewDelayTracker(notifier, journalRepo, log, m)

	// Resolve notification permission once, without blocking startup
	go tracker.RequestPermission(ctx)

	boardSync := usecase.NewBoardSync(scheduleProvider, normalizer, tracker, log, m)

	// Start the sync loop in a goroutine
	go boardSync.Start(ctx, cfg.SyncInterval)

	// Set up HTTP server
	refreshLimiter := httpapi.NewRateLimiter(rate.Limit(10.0/60.0), 10)
	defer refreshLimiter.Stop()

	apiHandler := httpapi.NewHandler(boardSync, journalRepo, log)
	router := httpapi.NewRouter(apiHandler, refreshLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if mongoClient != nil {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Arrivals Board Service stopped")
}

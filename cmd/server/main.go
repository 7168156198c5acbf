package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/notifier"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/infrastructure/config"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/infrastructure/persistence"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/interface/board"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/interface/channel"
	httpHandler "github.com/fareyxcel-dev/arrivalive-sub001/internal/interface/handler"
	mongoRepo "github.com/fareyxcel-dev/arrivalive-sub001/internal/interface/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/usecase"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/metrics"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Arrivalive Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	flightRecordRepo := mongoRepo.NewMongoFlightRecordRepository(db)
	subscriptionRepo := mongoRepo.NewMongoSubscriptionRepository(db)
	notificationLogRepo := mongoRepo.NewMongoNotificationLogRepository(db)

	// Airline reference data is optional; without it notification copy
	// falls back to the raw carrier code.
	var airlineRepository repository.AirlineRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository, err = mongoRepo.NewGormAirlineRepository(gormDB)
		if err != nil {
			log.Fatal("Failed to migrate airline reference data", "error", err)
		}
	}

	m := metrics.NewMetrics("arrivalive")

	// Set up channel adapters
	smsSender := channel.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, "", log)
	emailSender := channel.NewSendgridSender(cfg.SendgridAPIKey, cfg.EmailFromAddress, "", log)
	pushSender := channel.NewFCMSender(cfg.FCMServerKey, "", log)
	senders := []notifier.Sender{smsSender, emailSender, pushSender}

	dispatcher := usecase.NewDispatcher(
		subscriptionRepo,
		notificationLogRepo,
		airlineRepository,
		senders,
		m,
		log,
		cfg.DispatchConcurrency,
		cfg.ChannelSendTimeout,
	)

	// Set up pipeline
	fetcher := board.NewFetcher("", log)
	parser := utils.NewBoardParser(utils.NewHTMLTableExtractor(), log)
	detector := usecase.NewChangeDetector(flightRecordRepo, log)
	pipeline := usecase.NewPipeline(fetcher, parser, detector, flightRecordRepo, dispatcher, m, log)

	// Scheduled refresh
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RefreshSchedule, func() {
		pipeline.Refresh(ctx)
	})
	if err != nil {
		log.Fatal("Invalid refresh schedule", "schedule", cfg.RefreshSchedule, "error", err)
	}
	scheduler.Start()
	log.Info("Scheduled board refresh", "schedule", cfg.RefreshSchedule)

	// Set up HTTP server
	mux := http.NewServeMux()
	flightHandler := httpHandler.NewFlightHandler(pipeline, flightRecordRepo, subscriptionRepo, notificationLogRepo, log)
	flightHandler.Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
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
	log.Info("Received signal", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	<-scheduler.Stop().Done()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Arrivalive Service stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketdesk-service/internal/infrastructure/config"
	"ticketdesk-service/internal/infrastructure/persistence"
	"ticketdesk-service/internal/interface/api"
	mongoRepo "ticketdesk-service/internal/interface/repository"
	"ticketdesk-service/internal/usecase"
	"ticketdesk-service/pkg/logger"
	"ticketdesk-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Ticketdesk Service")

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

	// Provision the unique ticketNumber index on every exhibition
	// collection before taking traffic
	log.Info("Ensuring ticket indexes", "exhibitions", cfg.Exhibitions)
	if err := persistence.EnsureTicketIndexes(ctx, db, cfg.Exhibitions); err != nil {
		log.Fatal("Failed to ensure ticket indexes", "error", err)
	}

	// Set up metrics
	m := metrics.NewMetrics("ticketdesk", prometheus.DefaultRegisterer)

	// Set up repository and service
	ticketRepo := mongoRepo.NewMongoTicketRepository(db)
	ticketService := usecase.NewTicketService(ticketRepo, log, m)

	// Set up HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(cfg, ticketService, log, m)

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

	cancel()

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Ticketdesk Service stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resqlink/dispatch/internal/adapters/database"
	"github.com/resqlink/dispatch/internal/adapters/events"
	"github.com/resqlink/dispatch/internal/adapters/memory"
	"github.com/resqlink/dispatch/internal/adapters/providers/triage"
	"github.com/resqlink/dispatch/internal/api/handlers"
	"github.com/resqlink/dispatch/internal/api/routes"
	"github.com/resqlink/dispatch/internal/application/services"
	"github.com/resqlink/dispatch/internal/domain/providers"
	"github.com/resqlink/dispatch/internal/domain/repositories"
	"github.com/resqlink/dispatch/internal/infrastructure/clients/postgres"
	"github.com/resqlink/dispatch/internal/infrastructure/clients/redis"
	"github.com/resqlink/dispatch/internal/infrastructure/observability"
	"github.com/resqlink/dispatch/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Facility directory: PostgreSQL when configured, otherwise the
	// built-in static directory
	var facilityRepo repositories.FacilityRepository
	if cfg.Database.Host != "" {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
		}
		defer pgClient.Close()
		facilityRepo = database.NewFacilityAdapter(pgClient)
		log.Println("Facility directory backed by PostgreSQL")
	} else {
		facilityRepo = database.NewStaticFacilityAdapter()
		log.Println("Facility directory backed by static dataset (DB_HOST not set)")
	}

	// Initialize Redis client for the event bus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - trips still run, streaming is disabled
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// In-memory trip and toll stores
	tripStore := memory.NewTripStore()
	tollLog := memory.NewTollLog()

	// Triage classifier falls back to the heuristic provider when no
	// API key is configured
	triageProvider := triage.NewTriageProvider(&cfg.Gemini)

	rng := providers.NewRandomSource(time.Now().UnixNano())

	// Initialize services
	rankingService := services.NewRankingService()
	triageService := services.NewTriageService(triageProvider, time.Duration(cfg.Gemini.TimeoutSeconds)*time.Second)
	dispatchService := services.NewDispatchService(facilityRepo, tripStore, tollLog, eventBus, rng)
	simulationService := services.NewSimulationService(tripStore, eventBus, rng, cfg.Simulation, metrics)

	simulationService.Start(ctx)
	log.Printf("Live update scheduler started (interval %s)", cfg.Simulation.TickInterval)

	// Initialize handlers
	facilityHandler := handlers.NewFacilityHandler(facilityRepo, rankingService)
	triageHandler := handlers.NewTriageHandler(triageService)
	dispatchHandler := handlers.NewDispatchHandler(dispatchService, providers.DefaultAuthorize)
	tripHandler := handlers.NewTripHandler(tripStore, providers.DefaultAuthorize)
	tollHandler := handlers.NewTollHandler(tollLog, providers.DefaultAuthorize)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	// Set up router
	router := routes.NewRouter(
		facilityHandler,
		triageHandler,
		dispatchHandler,
		tripHandler,
		tollHandler,
		sseHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Stop the scheduler before tearing down the server so no tick
	// publishes into a closed bus
	simulationService.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}

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

	"github.com/velectro/voicelead/backend/internal/adapters/cache"
	"github.com/velectro/voicelead/backend/internal/adapters/events"
	"github.com/velectro/voicelead/backend/internal/adapters/memory"
	"github.com/velectro/voicelead/backend/internal/api/handlers"
	"github.com/velectro/voicelead/backend/internal/api/middleware"
	"github.com/velectro/voicelead/backend/internal/api/routes"
	"github.com/velectro/voicelead/backend/internal/application/services"
	"github.com/velectro/voicelead/backend/internal/domain/providers"
	"github.com/velectro/voicelead/backend/internal/infrastructure/clients/openai"
	"github.com/velectro/voicelead/backend/internal/infrastructure/clients/redis"
	"github.com/velectro/voicelead/backend/internal/infrastructure/clients/sheets"
	"github.com/velectro/voicelead/backend/internal/infrastructure/clients/twilio"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
	"github.com/velectro/voicelead/backend/pkg/config"
)

func main() {

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

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

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Twilio client. The service cannot place interview calls
	// without it, so missing credentials are fatal.
	twilioClient, err := twilio.NewClient(&cfg.Twilio, cfg.Server.BaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize Twilio client: %v", err)
	}
	log.Println("Twilio client initialized successfully")

	// Initialize OpenAI client
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}
	log.Println("OpenAI client initialized successfully")

	// Initialize lead export sink (optional)
	var leadSink providers.LeadSink
	if cfg.Sheets.Configured() {
		sheetsClient, err := sheets.NewClient(&cfg.Sheets)
		if err != nil {
			log.Printf("Warning: Failed to initialize Sheets client: %v", err)
		} else {
			leadSink = sheetsClient
			log.Println("Sheets client initialized successfully")
		}
	} else {
		log.Println("Lead export disabled (Google Sheets not configured)")
	}

	// Initialize adapters

	store := memory.NewLeadStore()

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize services

	exportService := services.NewLeadExportService(leadSink, metrics)

	leadService := services.NewLeadService(
		store,
		store,
		twilioClient,
		openaiClient,
		exportService,
		eventBus,
		cfg.Lead.InterviewTimeout,
	)

	script := services.NewInterviewScript()

	// Initialize handlers

	leadHandler := handlers.NewLeadHandler(leadService)
	twimlHandler := handlers.NewTwiMLHandler(script, cfg.Server.BaseURL)
	recordingWebhookHandler := handlers.NewRecordingWebhookHandler(leadService, metrics)

	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
		log.Println("SSE handler initialized successfully")
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		leadHandler,
		twimlHandler,
		recordingWebhookHandler,
		sseHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	// WriteTimeout stays unset: SSE connections are long-lived and a global
	// write deadline would cut them off.
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
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

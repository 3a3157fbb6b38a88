package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/internlink/internship-service/internal/config"
	"github.com/internlink/internship-service/internal/events"
	"github.com/internlink/internship-service/internal/handlers"
	"github.com/internlink/internship-service/internal/repositories/postgres"
	"github.com/internlink/internship-service/internal/services"
	"github.com/internlink/internship-service/internal/storage"
	"github.com/internlink/internship-service/internal/utils"
	"github.com/internlink/internship-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})

	// Initialize event publisher: Kafka when brokers are configured, an
	// in-process channel otherwise.
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(slogLogger)
	}

	// Initialize file storage
	files, err := storage.NewLocalFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize services
	serviceManager, err := services.NewServiceManager(services.ServiceManagerConfig{
		Repository:   repo,
		Publisher:    publisher,
		Files:        files,
		Logger:       slogLogger,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		ScanInterval: cfg.DeadlineScanInterval,
	})
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Start the deadline scanner
	scanCtx, stopScanner := context.WithCancel(context.Background())
	serviceManager.DeadlineScanner().Start(scanCtx)

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopScanner()
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

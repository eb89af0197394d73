package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/adapter/repository"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/apiclient"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/database"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/queue"
	"github.com/aseeltahaa/smartspace/internal/usecase/auth"
	"github.com/aseeltahaa/smartspace/internal/usecase/notification"
	"github.com/aseeltahaa/smartspace/pkg/config"
)

// The worker drains notification deliveries queued by the api process when
// NOTIFY_QUEUE=asynq. It reads the session token from Redis on each request so
// deliveries carry whatever token the api process holds at that moment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Notification.Queue != "asynq" {
		log.Fatalf("NOTIFY_QUEUE=%s has no external worker; set NOTIFY_QUEUE=asynq", cfg.Notification.Queue)
	}
	if cfg.Session.Store != "redis" {
		log.Fatalf("The worker needs SESSION_STORE=redis to share the api session")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cache.NewRedisStore(ctx, cfg.Redis.URL, "smartspace:")
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer store.Close()

	// Every request reads the token the api process last stored
	api := apiclient.New(cfg.API.BaseURL, auth.NewStoredToken(store, logger),
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(logger),
	)

	var failures repositories.FailureLog = repository.NewMemoryFailureLog(500)
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)
		failures = repository.NewFailureLogRepository(db)
	}

	// Deliveries only; the worker never enqueues and shows nothing locally
	dispatcher := notification.NewDispatcher(ctx, repository.NewNotificationRepository(api), nil, failures, nil,
		notification.Options{
			MaxRetries:    cfg.Notification.MaxRetries,
			RetryInterval: 2 * time.Second,
			JobTimeout:    cfg.Notification.JobTimeout,
		},
		logger,
	)

	server, err := queue.NewAsynqServer(cfg.Redis.URL, cfg.Notification.AsynqQueue, cfg.Notification.Workers, logger)
	if err != nil {
		log.Fatalf("Failed to create asynq server: %v", err)
	}
	server.Register(notification.TaskSend, dispatcher.Handler())

	logger.Info("🚀 Notification worker started",
		zap.String("queue", cfg.Notification.AsynqQueue),
		zap.Int("concurrency", cfg.Notification.Workers))

	if err := server.Run(ctx); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
	logger.Info("✅ Worker stopped gracefully")
}

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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/aseeltahaa/smartspace/pkg/validator"

	"github.com/aseeltahaa/smartspace/internal/adapter/handler"
	"github.com/aseeltahaa/smartspace/internal/adapter/repository"
	"github.com/aseeltahaa/smartspace/internal/domain/repositories"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/apiclient"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/cache"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/database"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/queue"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/realtime"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/storage"
	"github.com/aseeltahaa/smartspace/internal/usecase/admin"
	"github.com/aseeltahaa/smartspace/internal/usecase/auth"
	"github.com/aseeltahaa/smartspace/internal/usecase/meeting"
	"github.com/aseeltahaa/smartspace/internal/usecase/notification"
	"github.com/aseeltahaa/smartspace/pkg/config"
)

// failureLogCapacity bounds the in-memory failure log used without a database
const failureLogCapacity = 500

// retryInterval is the pause between notification delivery attempts
const retryInterval = 2 * time.Second

// @title           SmartSpace Client API
// @version         1.0
// @description     Local companion service for the SmartSpace room-booking API: meeting lists, detail editors, notifications and admin catalog
// @BasePath        /v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("🔧 Initializing dependencies...")

	// Session store
	var store cache.Store
	if cfg.Session.Store == "redis" {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(ctx, cfg.Redis.URL, "smartspace:")
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
	} else {
		store = cache.NewMemoryStore()
	}
	defer store.Close()

	log.Println("🔑 Restoring session...")
	sessions := auth.NewSessionManager(store, logger)

	api := apiclient.New(cfg.API.BaseURL, sessions,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(logger),
	)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	authRepo := repository.NewAuthRepository(api)
	userRepo := repository.NewUserRepository(api)
	meetingRepo := repository.NewMeetingRepository(api)
	notificationRepo := repository.NewNotificationRepository(api)
	roomRepo := repository.NewRoomRepository(api)
	featureRepo := repository.NewFeatureRepository(api)

	authService := auth.NewService(authRepo, userRepo, sessions, logger)
	if s, err := authService.Restore(ctx); err != nil {
		logger.Warn("⚠️ Stored session not restored", zap.Error(err))
	} else if s.IsAuthenticated() {
		logger.Info("✅ Session restored", zap.String("user_id", string(s.UserID())))
	}

	// Failure log
	failures, closeFailures := openFailureLog(cfg, logger)
	defer closeFailures()

	// Notification queue
	log.Println("📨 Initializing notification queue...")
	var (
		enqueuer queue.Enqueuer
		pool     *queue.LocalPool
	)
	if cfg.Notification.Queue == "asynq" {
		client, err := queue.NewAsynqClient(cfg.Redis.URL, cfg.Notification.AsynqQueue)
		if err != nil {
			log.Fatalf("Failed to create asynq client: %v", err)
		}
		defer client.Close()
		enqueuer = client
	} else {
		pool = queue.NewLocalPool(cfg.Notification.Workers, cfg.Notification.Buffer, logger)
		enqueuer = pool
	}

	dispatcher := notification.NewDispatcher(ctx, notificationRepo, enqueuer, failures,
		notification.NewLogDesktop(logger, cfg.Notification.Desktop),
		notification.Options{
			MaxRetries:    cfg.Notification.MaxRetries,
			RetryInterval: retryInterval,
			JobTimeout:    cfg.Notification.JobTimeout,
		},
		logger,
	)
	if pool != nil {
		pool.Register(notification.TaskSend, dispatcher.Handler())
		if err := pool.Start(ctx); err != nil {
			log.Fatalf("Failed to start notification workers: %v", err)
		}
		defer pool.Close()
	}

	bus := events.NewBus(16)
	inbox := notification.NewInbox(notificationRepo, bus, dispatcher, logger)

	lists := meeting.NewOrchestrator(meetingRepo, cfg.Pagination.PageSize, logger)
	editors := meeting.NewService(meetingRepo, dispatcher, sessions, logger)
	catalog := admin.NewCatalog(roomRepo, featureRepo, sessions, bus, logger)
	users := admin.NewUsers(authRepo, userRepo, sessions, logger)

	// Attachment archive
	sink, err := openSink(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s archive: %v", cfg.Storage.Type, err)
	}
	log.Printf("🗄️  Attachment archive: %s", sink.Name())

	hub := realtime.NewHub(logger)
	defer hub.Close()
	go hub.Forward(ctx, bus, events.TopicUnreadCount, events.TopicCatalogRevision)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		sessions,
		handler.NewAuth(authService, sessions, logger, lists, editors, inbox),
		handler.NewMeeting(lists, editors, logger),
		handler.NewNotification(inbox, dispatcher, logger),
		handler.NewAdmin(catalog, users, logger),
		handler.NewArchive(editors, sink, logger),
		handler.NewRealtime(hub, bus, cfg.Server.AllowedOrigins, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 SmartSpace API: %s", cfg.API.BaseURL)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openFailureLog keeps failures in Postgres when a database is configured
func openFailureLog(cfg *config.Config, logger *zap.Logger) (repositories.FailureLog, func()) {
	if !cfg.Database.Enabled {
		return repository.NewMemoryFailureLog(failureLogCapacity), func() {}
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via scripts/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run scripts/migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		logger.Info("🔄 Skipping migrations; run scripts/migrate to update the schema")
	}

	return repository.NewFailureLogRepository(db), func() {
		if err := database.CloseDB(db); err != nil {
			logger.Warn("⚠️ Database close failed", zap.Error(err))
		}
	}
}

func openSink(ctx context.Context, cfg *config.Config) (storage.Sink, error) {
	if cfg.Storage.Type == "minio" {
		m, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	fs, err := storage.NewFSSink(cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	return fs, nil
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthcare-records/config"
	deliveryHttp "healthcare-records/internal/delivery/http"
	"healthcare-records/internal/delivery/http/handler"
	"healthcare-records/internal/delivery/http/middleware"
	"healthcare-records/internal/infrastructure/cache"
	"healthcare-records/internal/infrastructure/database"
	"healthcare-records/internal/infrastructure/messaging"
	"healthcare-records/internal/repository"
	"healthcare-records/internal/service"
	"healthcare-records/internal/usecase"
	"healthcare-records/pkg/jwt"
	"healthcare-records/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   *messaging.RabbitPublisher
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(config.DefaultConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	if cfg.DB.RunMigrations {
		if err := database.RunMigrations(cfg.DB, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// RabbitMQ is optional
	events := service.NewEventPublisher(nil)
	if cfg.RabbitMQ.Enabled() {
		publisher, err := messaging.NewRabbitPublisher(cfg.RabbitMQ)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		app.Publisher = publisher
		events = service.NewEventPublisher(publisher)
		log.Infof("Publishing mapping events to queue %s", cfg.RabbitMQ.Queue)
	} else {
		log.Info("RabbitMQ not configured, mapping events are disabled")
	}

	// Initialize all layers
	clientIPs, err := middleware.NewClientIPResolver(cfg.RateLimit.TrustedProxies)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to parse trusted proxies: %w", err)
	}

	app.Server = initializeServer(cfg, log, db, redisClient, events, clientIPs)

	return app, nil
}

// setupLogger builds the application logger: text in development, JSON otherwise
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if cfg.IsDevelopment() {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, events service.EventPublisher, clientIPs *middleware.ClientIPResolver) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	mappingRepo := repository.NewMappingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	tokenStore := service.NewRedisTokenStore(redisClient, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, tokenStore, jwtService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, mappingRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, mappingRepo, auditService)
	mappingUsecase := usecase.NewMappingUsecase(db, log, mappingRepo, patientRepo, doctorRepo, auditService, events)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	mappingHandler := handler.NewMappingHandler(mappingUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg.RateLimit.AuthMax, cfg.RateLimit.AuthWindow, middleware.KeyByIPAndPath(clientIPs), log)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		mappingHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		rateLimitMiddleware,
		loggingMiddleware,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (broker, redis, database)
func (app *App) Close() {
	if app.Publisher != nil {
		app.Publisher.Close()
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis: %v", err)
		}
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				app.Log.Warnf("Failed to close database: %v", err)
			}
		}
	}
}

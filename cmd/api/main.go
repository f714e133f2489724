package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gocomet/rides-api/internal/api/handlers"
	"github.com/gocomet/rides-api/internal/api/routes"
	"github.com/gocomet/rides-api/internal/config"
	"github.com/gocomet/rides-api/internal/domain/ride"
	"github.com/gocomet/rides-api/internal/repository/memory"
	"github.com/gocomet/rides-api/internal/repository/postgres"
	"github.com/gocomet/rides-api/internal/service/rides"
	"github.com/gocomet/rides-api/pkg/cache"
	"github.com/gocomet/rides-api/pkg/database"
	"github.com/gocomet/rides-api/pkg/logger"
	"github.com/gocomet/rides-api/pkg/monitoring"
	"github.com/gocomet/rides-api/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Rides API",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
		logger.String("storage", cfg.Database.Backend),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = monitoring.Disabled()
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized successfully",
			logger.String("app_name", cfg.NewRelic.AppName))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	repo, closeStore, err := openRepository(ctx, cfg.Database, nrApp.IsEnabled(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", logger.Err(err))
	}
	defer closeStore()

	// Initialize Redis
	deps := routes.Deps{Logger: appLogger, NewRelic: nrApp.App()}
	if cfg.Redis.Enabled {
		redisClient, err := openRedis(ctx, cfg.Redis, nrApp)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)

		deps.Idempotency = cache.NewIdempotencyStore(redisClient, cfg.Redis.IdempotencyTTL)
		appLogger.Info("Connected to Redis successfully")
	}

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run(ctx)

	svc := rides.NewService(repo,
		rides.WithLogger(appLogger),
		rides.WithMonitoring(nrApp),
		rides.WithPublisher(wsHub),
	)

	h := handlers.NewHandlers(svc, appLogger, wsHub, handlers.Options{
		LegacyResponses: cfg.Server.LegacyResponses,
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
	})

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, h, deps)

	appLogger.Info("Routes configured successfully")

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig, instrumented bool, appLogger *logger.Logger) (ride.Repository, func(), error) {
	if cfg.Backend == config.BackendMemory {
		appLogger.Warn("Using in-memory storage; rides are lost on restart")
		return memory.NewRideRepository(), func() {}, nil
	}

	db, err := database.NewPostgresDB(ctx, database.Config{
		DSN:          cfg.DSN(),
		MaxConns:     cfg.MaxConnections,
		MaxIdle:      cfg.MaxIdleConns,
		MaxLifetime:  cfg.MaxLifetime,
		Instrumented: instrumented,
	})
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { closeQuietly(db, appLogger) }

	appLogger.Info("Connected to PostgreSQL successfully")

	if cfg.AutoMigrate {
		version, err := database.Migrate(db)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
		appLogger.Info("Database schema up to date", logger.Int("version", int(version)))
	}

	return postgres.NewRideRepository(db), closeDB, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig, nrApp *monitoring.NewRelicApp) (*redis.Client, error) {
	return cache.NewRedisClient(ctx, cache.Config{
		Host:        cfg.Host,
		Port:        cfg.Port,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	}, nrApp.App())
}

func closeQuietly(db *sql.DB, appLogger *logger.Logger) {
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", logger.Err(err))
	}
}

// Shoplens API server.
//
// Wires configuration, persistence, the Shopify gateway, application
// services and the HTTP router, then serves until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	eventapp "github.com/shoplens/backend/internal/application/event"
	insightsapp "github.com/shoplens/backend/internal/application/insights"
	syncapp "github.com/shoplens/backend/internal/application/sync"
	tenantapp "github.com/shoplens/backend/internal/application/tenant"
	"github.com/shoplens/backend/internal/domain/shared"
	"github.com/shoplens/backend/internal/infrastructure/auth"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/infrastructure/config"
	"github.com/shoplens/backend/internal/infrastructure/logger"
	"github.com/shoplens/backend/internal/infrastructure/persistence"
	"github.com/shoplens/backend/internal/infrastructure/scheduler"
	"github.com/shoplens/backend/internal/infrastructure/shopify"
	"github.com/shoplens/backend/internal/interfaces/http/handler"
	"github.com/shoplens/backend/internal/interfaces/http/middleware"
	"github.com/shoplens/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting Shoplens server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	insightsRepo := persistence.NewGormInsightsRepository(db.DB)

	// Shopify Admin API gateway, shared across tenants
	shopifyCfg := shopify.NewConfig()
	if cfg.Shopify.APIVersion != "" {
		shopifyCfg.APIVersion = cfg.Shopify.APIVersion
	}
	if cfg.Shopify.RequestTimeout > 0 {
		shopifyCfg.RequestTimeout = cfg.Shopify.RequestTimeout
	}
	if cfg.Shopify.PageSize > 0 {
		shopifyCfg.PageSize = cfg.Shopify.PageSize
	}
	gateway, err := shopify.NewAdapter(shopifyCfg)
	if err != nil {
		log.Fatal("Failed to build Shopify adapter", zap.Error(err))
	}

	// Idempotency fast path: Redis when configured, process-local
	// otherwise. Either way the database constraint stays authoritative.
	var idemStore shared.IdempotencyStore
	if cfg.Redis.Enabled {
		redisStore, err := cache.NewRedisIdempotencyStore(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisStore.Close() }()
		idemStore = redisStore
		log.Info("Using Redis idempotency store",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		memStore := cache.NewInMemoryIdempotencyStore()
		defer func() { _ = memStore.Close() }()
		idemStore = memStore
		log.Info("Using in-memory idempotency store")
	}

	// Application services
	syncService := syncapp.NewService(tenantRepo, productRepo, customerRepo, orderRepo, gateway, log)
	insightsService := insightsapp.NewService(insightsRepo, tenantRepo)
	eventService := eventapp.NewService(eventRepo, tenantRepo, idemStore, shared.DefaultIdempotencyConfig(), log)
	tenantService := tenantapp.NewService(tenantRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Background sync scheduler
	if cfg.Scheduler.Enabled {
		schedCfg := scheduler.SyncSchedulerConfig{
			Enabled:   true,
			Interval:  cfg.Scheduler.Interval,
			TenantIDs: cfg.Scheduler.TenantIDs,
		}
		runner := scheduler.SyncRunnerFunc(func(ctx context.Context, tenantID uuid.UUID) error {
			_, err := syncService.SyncTenant(ctx, tenantID)
			return err
		})
		syncScheduler, err := scheduler.NewSyncScheduler(schedCfg, runner, log)
		if err != nil {
			log.Fatal("Failed to build sync scheduler", zap.Error(err))
		}
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := syncScheduler.Stop(ctx); err != nil {
				log.Error("Failed to stop sync scheduler", zap.Error(err))
			}
		}()
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
	)

	// Handlers and routes
	syncHandler := handler.NewSyncHandler(syncService, insightsService)
	eventHandler := handler.NewEventHandler(eventService, insightsService)
	tenantHandler := handler.NewTenantHandler(tenantService)
	systemHandler := handler.NewSystemHandler(db)

	router.NewRouter(engine).
		Register(router.NewSyncRoutes(syncHandler, jwtService)).
		Register(router.NewEventRoutes(eventHandler, jwtService, log)).
		Register(router.NewTenantRoutes(tenantHandler, cfg.Admin.Key)).
		Register(router.NewSystemRoutes(systemHandler)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

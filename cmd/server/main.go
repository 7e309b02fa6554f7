package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appordering "github.com/fieldsales/backend/internal/application/ordering"
	"github.com/fieldsales/backend/internal/domain/catalog"
	"github.com/fieldsales/backend/internal/infrastructure/auth"
	"github.com/fieldsales/backend/internal/infrastructure/cache"
	"github.com/fieldsales/backend/internal/infrastructure/config"
	"github.com/fieldsales/backend/internal/infrastructure/event"
	"github.com/fieldsales/backend/internal/infrastructure/fulfillment"
	"github.com/fieldsales/backend/internal/infrastructure/logger"
	"github.com/fieldsales/backend/internal/infrastructure/persistence"
	"github.com/fieldsales/backend/internal/interfaces/http/handler"
	"github.com/fieldsales/backend/internal/interfaces/http/middleware"
	"github.com/fieldsales/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting field sales backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Initialize repositories
	draftRepo := persistence.NewGormDraftRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB, cfg.Orders.NumberPrefix)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Product lookups sit on the draft and submission hot path; decorate
	// them with the Redis read-through cache when Redis is reachable
	productRepo := persistence.NewGormProductRepository(db.DB)
	var productLookup catalog.ProductRepository = productRepo
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, product cache disabled", zap.Error(err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		productLookup = cache.NewCachedProductRepository(productRepo, redisClient,
			cache.WithProductCacheLogger(log))
		log.Info("Product cache enabled")
	}

	// Fulfillment gateway
	gateway, err := fulfillment.NewHTTPGateway(cfg.Fulfillment, log)
	if err != nil {
		log.Fatal("Failed to configure fulfillment gateway", zap.Error(err))
	}

	// Event bus for order lifecycle events
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	draftService := appordering.NewDraftService(draftRepo, productLookup, clientRepo)
	orderService := appordering.NewOrderService(orderRepo, draftRepo, productLookup, clientRepo, userRepo, gateway, log)
	orderService.SetEventPublisher(eventBus)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	draftHandler := handler.NewDraftHandler(draftService)
	orderHandler := handler.NewOrderHandler(orderService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and request logs
	// carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Probes live outside API versioning and authentication
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	}))
	r.Register(handler.OrderRoutes(draftHandler, orderHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

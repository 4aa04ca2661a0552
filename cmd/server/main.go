package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	basketapp "github.com/teeforge/backend/internal/application/basket"
	studioapp "github.com/teeforge/backend/internal/application/studio"
	"github.com/teeforge/backend/internal/domain/studio"
	"github.com/teeforge/backend/internal/infrastructure/catalog"
	"github.com/teeforge/backend/internal/infrastructure/config"
	"github.com/teeforge/backend/internal/infrastructure/event"
	"github.com/teeforge/backend/internal/infrastructure/logger"
	"github.com/teeforge/backend/internal/infrastructure/persistence"
	"github.com/teeforge/backend/internal/infrastructure/render"
	"github.com/teeforge/backend/internal/infrastructure/storage"
	"github.com/teeforge/backend/internal/interfaces/http/handler"
	"github.com/teeforge/backend/internal/interfaces/http/middleware"
	"github.com/teeforge/backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting TeeForge Studio",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database, with GORM logging routed through zap
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
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connected")

	lineItemRepo := persistence.NewGormLineItemRepository(db.DB)

	// Content backend client, optionally fronted by a Redis cache
	contentClient := catalog.NewClient(&cfg.Catalog, log)
	var assetCatalog studioapp.AssetCatalog = contentClient
	if cfg.Catalog.CacheEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			_ = redisClient.Close()
		}()
		assetCatalog = catalog.NewCachedCatalog(contentClient, redisClient, cfg.Catalog.CacheTTL, log)
		log.Info("Catalog cache enabled", zap.Duration("ttl", cfg.Catalog.CacheTTL))
	}

	// Object storage for exported designs
	var objectStorage studioapp.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	default:
		objectStorage = storage.NewMemoryObjectStorage()
		log.Warn("Using in-memory object storage, exported designs will not survive restarts")
	}

	// Event bus for scene domain events
	eventBus := event.NewInMemoryEventBus(log)

	// Studio services
	costEngine := studio.NewCostEngine(studio.PriceList{
		BaseFee:       decimal.NewFromFloat(cfg.Studio.BaseFee),
		TextPerChar:   decimal.NewFromFloat(cfg.Studio.TextPerChar),
		UploadedImage: decimal.NewFromFloat(cfg.Studio.UploadedImage),
		TemplateImage: decimal.NewFromFloat(cfg.Studio.TemplateImage),
	})
	surface := render.NewSurface(&cfg.Studio, contentClient, log)

	editorService := studioapp.NewEditorService(costEngine, eventBus, log, cfg.Studio.HistoryLimit)
	checkoutService := studioapp.NewCheckoutService(editorService, costEngine, surface, objectStorage, lineItemRepo, log)
	catalogService := studioapp.NewCatalogService(assetCatalog, log)
	basketService := basketapp.NewBasketService(lineItemRepo, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// RequestID runs first so the access log carries the correlation id.
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Routes
	systemHandler := handler.NewSystemHandler(db)
	router.NewRouter(engine).
		Register(handler.NewStudioHandler(editorService, checkoutService)).
		Register(handler.NewCatalogHandler(catalogService)).
		Register(handler.NewBasketHandler(basketService)).
		Register(systemHandler).
		Setup()

	engine.GET("/health", systemHandler.Health)

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

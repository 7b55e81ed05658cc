package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventapp "github.com/eventhub/backend/internal/application/event"
	identityapp "github.com/eventhub/backend/internal/application/identity"
	mediaapp "github.com/eventhub/backend/internal/application/media"
	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/infrastructure/auth"
	"github.com/eventhub/backend/internal/infrastructure/cache"
	"github.com/eventhub/backend/internal/infrastructure/config"
	"github.com/eventhub/backend/internal/infrastructure/logger"
	"github.com/eventhub/backend/internal/infrastructure/persistence"
	"github.com/eventhub/backend/internal/infrastructure/storage"
	"github.com/eventhub/backend/internal/interfaces/http/handler"
	"github.com/eventhub/backend/internal/interfaces/http/middleware"
	"github.com/eventhub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

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

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	summaryCache, err := cache.NewSummaryCache(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize summary cache", zap.Error(err))
	}
	defer func() {
		if err := summaryCache.Close(); err != nil {
			log.Error("Failed to close summary cache", zap.Error(err))
		}
	}()

	objectStorage, err := storage.NewS3ObjectStorage(context.Background(), cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	eventRepo := persistence.NewGormEventRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)

	eventService := eventapp.NewService(eventRepo, summaryCache, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	uploadService := mediaapp.NewUploadService(objectStorage, attachmentRepo, cfg.Storage.PresignExpiry, log)

	generator := summary.NewGenerator(
		summary.WithFragmentDelay(cfg.Summary.FragmentDelayBase, cfg.Summary.FragmentDelayUnit),
	)
	orchestrator := summary.NewOrchestrator(eventRepo, summaryCache, generator, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/healthz", handler.NewSystemHandler(db).Healthz)

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuthMiddleware(middleware.RequireAuth(jwtService, log)),
	).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewPublicEventHandler(eventService, orchestrator)).
		RegisterProtected(handler.NewEventHandler(eventService)).
		RegisterProtected(handler.NewUploadHandler(uploadService)).
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

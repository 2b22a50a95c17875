package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	identityapp "github.com/shelfscan/backend/internal/application/identity"
	"github.com/shelfscan/backend/internal/application/intake"
	inventoryapp "github.com/shelfscan/backend/internal/application/inventory"
	requestapp "github.com/shelfscan/backend/internal/application/request"
	"github.com/shelfscan/backend/internal/infrastructure/auth"
	"github.com/shelfscan/backend/internal/infrastructure/config"
	"github.com/shelfscan/backend/internal/infrastructure/event"
	"github.com/shelfscan/backend/internal/infrastructure/logger"
	"github.com/shelfscan/backend/internal/infrastructure/persistence"
	"github.com/shelfscan/backend/internal/infrastructure/qr"
	"github.com/shelfscan/backend/internal/interfaces/http/handler"
	"github.com/shelfscan/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shelfscan backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis when reachable, in-memory otherwise. The
	// in-memory fallback only revokes tokens on this instance.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	}

	// Repositories
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	shelfRepo := persistence.NewGormShelfRepository(db.DB)
	requestRepo := persistence.NewGormRequestRepository(db.DB)

	// Event bus with the audit trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(companyRepo, userRepo, jwtService, blacklist, eventBus, log)
	scanService := intake.NewScanService(qr.NewDecoder(log), log)
	productService := inventoryapp.NewProductService(productRepo, shelfRepo, eventBus, log)
	shelfService := inventoryapp.NewShelfService(shelfRepo, productRepo, log)
	requestService := requestapp.NewService(requestRepo, productRepo, eventBus, log)

	// HTTP surface
	healthHandler := handler.NewHealthHandler(db, cfg.App.Name, version)
	engine := router.New(router.Dependencies{
		Config:         cfg,
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Handlers: []router.RouteRegistrar{
			handler.NewAuthHandler(authService),
			handler.NewScanHandler(scanService, cfg.Upload.MaxImageBytes),
			handler.NewProductHandler(productService),
			handler.NewShelfHandler(shelfService),
			handler.NewRequestHandler(requestService),
			healthHandler,
		},
		Root: []router.RouteRegistrar{healthHandler},
	})

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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	adminapp "github.com/c-gorringe/moxie-app/internal/application/admin"
	identityapp "github.com/c-gorringe/moxie-app/internal/application/identity"
	reportapp "github.com/c-gorringe/moxie-app/internal/application/report"
	watchlistapp "github.com/c-gorringe/moxie-app/internal/application/watchlist"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/auth"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/cache"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/config"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/logger"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/persistence"
	"github.com/c-gorringe/moxie-app/internal/infrastructure/telemetry"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/handler"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/middleware"
	"github.com/c-gorringe/moxie-app/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync(log)

	log.Info("Starting moxie backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection
	db, err := persistence.NewDatabase(cfg.Database, log, cfg.Telemetry.Enabled)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Leaderboard cache is optional. A nil cache is a permanent miss.
	leaderboardCache := cache.NewLeaderboardCache(
		cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB, cfg.Seed.LeaderboardTTL)
	if leaderboardCache != nil {
		defer func() {
			if err := leaderboardCache.Close(); err != nil {
				log.Error("Error closing leaderboard cache", zap.Error(err))
			}
		}()
		log.Info("Leaderboard cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	accoladeRepo := persistence.NewGormAccoladeRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	commissionRepo := persistence.NewGormCommissionRepository(db.DB)
	withholdingRepo := persistence.NewGormWithholdingLimitRepository(db.DB)
	watchlistRepo := persistence.NewGormWatchlistRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(
		cfg.JWT.Secret, cfg.JWT.Issuer,
		cfg.JWT.AccessTokenExpiration, cfg.JWT.RefreshTokenExpiration)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	profileService := identityapp.NewProfileService(userRepo, accoladeRepo, reportRepo, log)
	leaderboardService := reportapp.NewLeaderboardService(reportRepo, leaderboardCache, log)
	performanceService := reportapp.NewPerformanceService(reportRepo, log)
	commissionService := reportapp.NewCommissionService(commissionRepo, saleRepo, log)
	withholdingService := reportapp.NewWithholdingService(
		withholdingRepo, commissionRepo,
		decimal.NewFromFloat(cfg.Seed.WithholdingLimit), log)
	watchlistService := watchlistapp.NewService(watchlistRepo, userRepo, reportRepo, log)
	seedService := adminapp.NewSeedService(
		userRepo, saleRepo, commissionRepo, withholdingRepo,
		leaderboardCache, cfg.Seed, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(profileService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	performanceHandler := handler.NewPerformanceHandler(performanceService)
	commissionHandler := handler.NewCommissionHandler(commissionService)
	withholdingHandler := handler.NewWithholdingHandler(withholdingService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	adminHandler := handler.NewAdminHandler(seedService, middleware.RequireRole("admin", log))

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Middleware stack, ordered: request ID, panic recovery, request
	// logging, security headers, CORS, tracing.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Health check endpoints, inside and outside API versioning
	health := healthHandler(db)
	engine.GET("/health", health)
	engine.GET("/api/v1/health", health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	r.Register(authHandler).
		Register(userHandler).
		Register(leaderboardHandler).
		Register(performanceHandler).
		Register(commissionHandler).
		Register(withholdingHandler).
		Register(watchlistHandler).
		Register(adminHandler)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

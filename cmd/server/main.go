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

	"triptacticx/internal/config"
	"triptacticx/internal/delivery"
	"triptacticx/internal/document"
	"triptacticx/internal/handler"
	"triptacticx/internal/logger"
	"triptacticx/internal/messaging"
	"triptacticx/internal/middleware"
	"triptacticx/internal/planner"
	"triptacticx/internal/repository"
	"triptacticx/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	zap.ReplaceGlobals(log)
	cfg.LogSummary(log)

	// --- External Connections (все опциональны) ---
	var planRepo repository.PlanRepository = repository.NewNopPlanRepository()
	if cfg.ArchiveEnabled() {
		pgPool, err := setupPostgres(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer pgPool.Close()

		if err := repository.ApplyMigrations(pgPool, log.Named("Migrations")); err != nil {
			zap.L().Fatal("Failed to apply migrations", zap.Error(err))
		}
		planRepo = repository.NewPgPlanRepository(pgPool, log)
		zap.L().Info("Plan archive enabled")
	} else {
		zap.L().Info("DB_HOST не задан, архив планов отключен")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setupRedis(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	} else {
		zap.L().Info("REDIS_ADDR не задан, rate limiter использует in-memory хранилище")
	}

	var publisher messaging.PlanEventPublisher = messaging.NewNopPublisher()
	if cfg.RabbitMQURL != "" {
		mqConn, err := messaging.ConnectRabbitMQ(cfg.RabbitMQURL, log, 10, 5*time.Second)
		if err != nil {
			zap.L().Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mqConn.Close()

		rabbitPublisher, err := messaging.NewRabbitMQPublisher(mqConn, cfg.PlanEventsQueue, log)
		if err != nil {
			zap.L().Fatal("Failed to create plan event publisher", zap.Error(err))
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		zap.L().Info("RABBITMQ_URL не задан, события о планах не публикуются")
	}

	// --- Dependency Injection ---
	aiClient, err := planner.NewAIClient(cfg, log)
	if err != nil {
		zap.L().Fatal("Failed to create AI client", zap.Error(err))
	}
	prompts, err := planner.NewPromptProvider()
	if err != nil {
		zap.L().Fatal("Failed to load prompts", zap.Error(err))
	}
	tripPlanner := planner.NewAgentPlanner(aiClient, prompts, planner.ParamsFromConfig(cfg), log)

	var deliverer delivery.Deliverer
	if smtpCfg := cfg.SMTP(); smtpCfg.HasCredentials() {
		deliverer = delivery.NewEmailDeliverer(smtpCfg, log)
	} else {
		zap.L().Warn("EMAIL_ADDRESS/EMAIL_PASSWORD не заданы, письма отправляться не будут")
		deliverer = delivery.NewNopDeliverer(log)
	}

	tripService := service.NewTripService(
		tripPlanner,
		document.NewComposer(log),
		deliverer,
		planRepo,
		publisher,
		log,
	)
	tripHandler := handler.NewTripHandler(tripService, cfg.StaticDir, log)
	planLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg)))

	p := ginprometheus.NewPrometheus("gin")

	tripHandler.RegisterRoutes(router, planLimiter)

	// Prometheus подключаем после регистрации роутов
	p.Use(router)

	// WriteTimeout покрывает семь последовательных вызовов модели в /plan-trip
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	zap.L().Info("Starting HTTP server", zap.String("port", cfg.ServerPort))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exiting")
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	origins := cfg.GetAllowedOrigins()
	switch {
	case len(origins) == 0:
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
		zap.L().Info("CORSAllowedOrigins not set, allowing default", zap.String("origin", "http://localhost:3000"))
	case len(origins) == 1 && origins[0] == "*":
		// С AllowAllOrigins gin-contrib/cors не разрешает credentials
		corsCfg.AllowAllOrigins = true
	default:
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsCfg.ExposeHeaders = []string{"Content-Disposition", "X-Email-Sent", "X-Plan-ID", middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

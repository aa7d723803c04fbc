package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"metra-api/core/cache"
	"metra-api/core/config"
	"metra-api/core/constants"
	"metra-api/core/database"
	"metra-api/core/logger"
	"metra-api/core/metrics"
	coreMiddleware "metra-api/core/middleware"
	"metra-api/core/queue"
	"metra-api/core/storage"
	"metra-api/core/validator"
	"metra-api/migrations"
	"metra-api/modules/auth"
	"metra-api/modules/collab"
	"metra-api/modules/event"
	"metra-api/modules/notification"
	"metra-api/modules/poll"
	"metra-api/modules/site"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the API: config, database with migrations, redis, the task queue
// worker and the HTTP server. It blocks until SIGINT/SIGTERM.
func Run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		DBName:   cfg.DBName,
	})
	if err != nil {
		return err
	}

	if err := migrations.Up(db.SQLx().DB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c, err := cache.InitCache(cache.CacheConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer c.Close()

	queueConfig := queue.QueueConfig{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}
	queueClient := queue.NewClient(queueConfig)
	defer queueClient.Close()

	store, err := storage.InitStorage(storage.StorageConfig{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	m := metrics.New(constants.ServiceName)
	mw := coreMiddleware.NewMiddleware(c)

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(mw.RequestID())
	e.Use(m.Middleware())
	e.Use(echoMiddleware.TimeoutWithConfig(echoMiddleware.TimeoutConfig{
		Timeout: constants.DefaultRequestTimeout,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "service": constants.ServiceName})
	})
	e.GET("/metrics", metrics.Handler())

	g := e.Group(constants.APIBasePath)

	taskMux := asynq.NewServeMux()

	profileRepo := auth.Init(g, &db, mw, c)
	siteRepo := site.Init(g, &db, mw, store)
	notificationService := notification.Init(g, &db, mw, queueClient, taskMux, profileRepo)
	eventRepo := event.Init(g, &db, mw, siteRepo, notificationService)
	poll.Init(g, &db, mw, eventRepo, notificationService)
	collab.Init(g, &db, mw, eventRepo, notificationService)

	worker := queue.NewServer(queueConfig)
	if err := worker.Start(taskMux); err != nil {
		return fmt.Errorf("start task worker: %w", err)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped", "error", err)
		}
	}()
	logger.Info("Server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	worker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}

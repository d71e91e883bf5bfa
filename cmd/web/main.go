package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/diario-eletronico/internal/config"
	"github.com/noah-isme/diario-eletronico/internal/database"
	"github.com/noah-isme/diario-eletronico/internal/handler"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/repository"
	"github.com/noah-isme/diario-eletronico/internal/router"
	"github.com/noah-isme/diario-eletronico/internal/service"
	"github.com/noah-isme/diario-eletronico/internal/session"
	"github.com/noah-isme/diario-eletronico/internal/view"
	"github.com/noah-isme/diario-eletronico/pkg/alunoapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "production" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	store := session.NewMemoryStore(cfg.SessionTTL)
	if cfg.SessionStore == config.SessionStoreRedis {
		store = session.NewRedisStore(redisClient, "", cfg.SessionTTL)
	}

	alunoClient, err := alunoapi.New(alunoapi.Config{
		BaseURL: cfg.AlunoAPIBaseURL,
		Timeout: cfg.AlunoAPITimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create aluno api client: %v", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, validate, logger)
	notificationService := service.NewNotificationService(redisClient, cfg.NotificationChannel, natsConn, logger)
	alunoService := service.NewAlunoService(alunoClient, store, notificationService, activityService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:     &logger,
		SessionTTL: cfg.SessionTTL,
		Secure:     cfg.AppEnv == "production",
	})
	router.Register(app, cfg, router.Dependencies{
		PageHandler:         handler.NewAlunoPageHandler(alunoService, renderer, logger),
		FormHandler:         handler.NewFormHandler(alunoService, validate, logger),
		ActivityHandler:     handler.NewActivityHandler(activityService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger, cfg.NotificationKeepAlive),
		Static:              view.Static(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(ctx)

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("aluno_api", cfg.AlunoAPIBaseURL).Msg("starting web server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

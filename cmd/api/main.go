package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/glptrack/wellness-service/internal/api/http"
	"github.com/glptrack/wellness-service/internal/api/http/handlers"
	"github.com/glptrack/wellness-service/internal/auth"
	"github.com/glptrack/wellness-service/internal/config"
	"github.com/glptrack/wellness-service/internal/events"
	"github.com/glptrack/wellness-service/internal/observability"
	"github.com/glptrack/wellness-service/internal/persistence"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/internal/service"
	"github.com/glptrack/wellness-service/internal/storage"
	"github.com/glptrack/wellness-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}
	if store == nil {
		logger.Warn("object storage not configured; uploads disabled")
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	forumRepo := repository.NewForumRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	newsRepo := repository.NewNewsRepository(pool)
	foodRepo := repository.NewFoodRepository(pool)
	recordRepo := repository.NewRecordRepository(pool)
	shortcodeRepo := repository.NewShortcodeRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	resolver := auth.NewResolver(cfg.Auth.SuperuserEmail)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokens, userRepo)

	authzService := service.NewAuthzService(resolver, userRepo)
	entitlementService := service.NewEntitlementService(userRepo, promoRepo, resolver, dispatcher, metrics, cfg.Premium)
	mediaService := service.NewMediaService(shortcodeRepo, store, logger)
	profileService := service.NewProfileService(userRepo, dispatcher)
	presenceService := service.NewPresenceService(redis.Client, userRepo, cfg.Presence)
	forumService := service.NewForumService(forumRepo, mediaService, resolver, dispatcher)
	contentService := service.NewContentService(contentRepo, authzService, entitlementService, mediaService, logger)
	newsService := service.NewNewsService(newsRepo, authzService, mediaService)
	foodService := service.NewFoodService(foodRepo, authzService)
	recordService := service.NewRecordService(recordRepo)
	opengraphService := service.NewOpenGraphService(nil)
	settingsService := service.NewSettingsService(settingsRepo, authzService)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Profile:        handlers.NewProfileHandler(profileService, presenceService, authzService),
		Premium:        handlers.NewPremiumHandler(entitlementService),
		Forum:          handlers.NewForumHandler(forumService),
		Content:        handlers.NewContentHandler(contentService),
		News:           handlers.NewNewsHandler(newsService),
		Foods:          handlers.NewFoodsHandler(foodService),
		Records:        handlers.NewRecordsHandler(recordService),
		Media:          handlers.NewMediaHandler(mediaService),
		OpenGraph:      handlers.NewOpenGraphHandler(opengraphService),
		Admin:          handlers.NewAdminHandler(entitlementService, authzService, settingsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

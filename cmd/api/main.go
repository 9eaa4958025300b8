package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httpapi "github.com/complainthub/complainthub/internal/api/http"
	"github.com/complainthub/complainthub/internal/api/http/handlers"
	"github.com/complainthub/complainthub/internal/auth"
	"github.com/complainthub/complainthub/internal/config"
	"github.com/complainthub/complainthub/internal/events"
	"github.com/complainthub/complainthub/internal/observability"
	"github.com/complainthub/complainthub/internal/persistence"
	"github.com/complainthub/complainthub/internal/repository"
	"github.com/complainthub/complainthub/internal/service"
	"github.com/complainthub/complainthub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("postgres connection failed", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := postgres.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	brandRepo := repository.NewBrandRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	invitationRepo := repository.NewInvitationRepository(pool)
	billingRepo := repository.NewBillingRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	chatStore := repository.NewChatStore(redis.Client, cfg.Chat.SessionTTL())
	settingsStore := repository.NewSettingsStore(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		BrandRepo:      brandRepo,
		AttachmentRepo: attachmentRepo,
		Dispatcher:     dispatcher,
	})
	brandService := service.NewBrandService(brandRepo, userRepo)
	billingService := service.NewBillingService(ticketRepo, brandRepo, billingRepo, dispatcher, logger, cfg.Billing)
	analyticsService := service.NewAnalyticsService(ticketRepo, brandRepo, redis.Client, logger)
	teamService := service.NewTeamService(invitationRepo, authService, dispatcher, cfg.Auth)
	chatService := service.NewChatService(chatStore, ticketService)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	billingWorker := worker.NewBillingWorker(billingService, logger, cfg.Billing.SweepInterval())
	go billingWorker.Run(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
		ErrorHandler: httpapi.ErrorHandler(logger, metrics),
	})
	httpapi.RegisterMiddlewares(app, logger, metrics)

	authMW := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	httpapi.RegisterRoutes(app, authMW, httpapi.Handlers{
		Health:    handlers.NewHealthHandler(postgres, redis, cfg.App.Version),
		Auth:      handlers.NewAuthHandler(authService),
		Tickets:   handlers.NewTicketsHandler(ticketService, cfg.Storage),
		Brands:    handlers.NewBrandsHandler(brandService, billingService),
		Team:      handlers.NewTeamHandler(teamService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Chat:      handlers.NewChatHandler(chatService),
		Admin:     handlers.NewAdminHandler(userRepo, brandRepo, ticketRepo, billingService, settingsStore),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/telecom-support/internal/ai"
	httptransport "github.com/spec-kit/telecom-support/internal/api/http"
	"github.com/spec-kit/telecom-support/internal/api/http/handlers"
	"github.com/spec-kit/telecom-support/internal/auth"
	"github.com/spec-kit/telecom-support/internal/config"
	"github.com/spec-kit/telecom-support/internal/events"
	"github.com/spec-kit/telecom-support/internal/observability"
	"github.com/spec-kit/telecom-support/internal/persistence"
	"github.com/spec-kit/telecom-support/internal/repository"
	"github.com/spec-kit/telecom-support/internal/service"
	"github.com/spec-kit/telecom-support/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	clientRepo := repository.NewClientRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	engineerRepo := repository.NewEngineerRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)

	completer := ai.NewClient(cfg.Advisor)
	advisor := ai.NewAdvisor(completer, redis.ClientHandle(), cfg.Advisor.CacheTTL(), logger)

	valuationService := service.NewValuationService(clientRepo, cfg.Scoring)
	priorityService := service.NewPriorityService(valuationService, subscriptionRepo, metrics)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:   ticketRepo,
		EngineerRepo: engineerRepo,
		ClientRepo:   clientRepo,
		Advisor:      advisor,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		ClientRepo:   clientRepo,
		EngineerRepo: engineerRepo,
		Priority:     priorityService,
		Valuation:    valuationService,
		Advisor:      advisor,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		ClientRepo:       clientRepo,
		CatalogRepo:      catalogRepo,
		SubscriptionRepo: subscriptionRepo,
		EngineerRepo:     engineerRepo,
	})
	authService := service.NewAuthService(*cfg, staffRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService, assignmentService),
		StaffTickets:   handlers.NewStaffTicketsHandler(ticketService, assignmentService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		Staff:          handlers.NewStaffHandler(authService),
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

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/Jack-WebDev/ahsa/internal/api/http"
	"github.com/Jack-WebDev/ahsa/internal/api/http/handlers"
	"github.com/Jack-WebDev/ahsa/internal/auth"
	"github.com/Jack-WebDev/ahsa/internal/config"
	"github.com/Jack-WebDev/ahsa/internal/events"
	"github.com/Jack-WebDev/ahsa/internal/observability"
	"github.com/Jack-WebDev/ahsa/internal/persistence"
	"github.com/Jack-WebDev/ahsa/internal/repository"
	"github.com/Jack-WebDev/ahsa/internal/service"
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

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redis.Close()

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	otpRepo := repository.NewOTPRepository(redis.Client)

	tokens := auth.NewTokenManager(cfg.Auth)
	resolver := auth.NewResolver(logger)
	authMiddleware := auth.NewMiddleware(tokens, resolver, logger)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := service.NewLogMailer(cfg.Notification.EmailFrom, logger)
	service.NewNotificationService(dispatcher, mailer, logger)

	userService := service.NewUserService(*cfg, service.UserDependencies{
		UserRepo:   userRepo,
		OTPRepo:    otpRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	}, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:          handlers.NewUsersHandler(userService),
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

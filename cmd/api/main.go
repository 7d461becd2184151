package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/noorskin/storefront/internal/api/http"
	"github.com/noorskin/storefront/internal/api/http/handlers"
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/config"
	"github.com/noorskin/storefront/internal/content"
	"github.com/noorskin/storefront/internal/events"
	"github.com/noorskin/storefront/internal/observability"
	"github.com/noorskin/storefront/internal/persistence"
	"github.com/noorskin/storefront/internal/repository"
	"github.com/noorskin/storefront/internal/service"
	"github.com/noorskin/storefront/internal/session"
	"github.com/noorskin/storefront/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	credentials, err := repository.NewSeedCredentialStore(repository.DefaultManagerSeeds(), cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to build credential store", zap.Error(err))
	}

	sessions := session.NewManager(session.Dependencies{
		Credentials: credentials,
		Store:       persistence.NewRedisSessionStore(redis.Client, cfg.Session.StorageKey, cfg.Session.TTL()),
		Events:      dispatcher,
		Logger:      logger.Named("session"),
	}, session.WithLoginLatency(cfg.Session.LoginLatency()))

	rehydrateCtx, rehydrateCancel := context.WithTimeout(ctx, cfg.Session.RehydrateDeadline())
	snap := sessions.Rehydrate(rehydrateCtx)
	rehydrateCancel()
	logger.Info("console session restored", zap.Bool("authenticated", snap.Authenticated))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	guard := auth.NewGuard(sessions, tokens, dispatcher)

	productService := service.NewProductService(repository.NewProductRepository(pg.PoolHandle()), dispatcher)
	cms := content.NewClient(cfg.CMS, redis.Client, logger.Named("content"))

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.Version)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, sessions),
		Manager:  handlers.NewManagerHandler(sessions, tokens, guard, cfg.App.Version),
		Staff:    handlers.NewStaffHandler(credentials, cfg.App.Version),
		Products: handlers.NewProductsHandler(productService, cfg.App.Version),
		Content:  handlers.NewContentHandler(cms, cfg.App.Version),
		Guard:    guard,
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

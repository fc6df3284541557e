package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/deadline-tracker/internal/api/http"
	"github.com/spec-kit/deadline-tracker/internal/api/http/handlers"
	"github.com/spec-kit/deadline-tracker/internal/auth"
	"github.com/spec-kit/deadline-tracker/internal/config"
	"github.com/spec-kit/deadline-tracker/internal/events"
	"github.com/spec-kit/deadline-tracker/internal/export"
	"github.com/spec-kit/deadline-tracker/internal/observability"
	"github.com/spec-kit/deadline-tracker/internal/persistence"
	"github.com/spec-kit/deadline-tracker/internal/repository"
	"github.com/spec-kit/deadline-tracker/internal/service"
	"github.com/spec-kit/deadline-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
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

	store, err := newStore(ctx, cfg, pg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}

	var redis *persistence.Redis
	if cfg.Auth.SessionDriver == config.SessionDriverRedis {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}
	sessions := newSessionStore(ctx, cfg, redis, logger)

	renderer, err := newRenderer(cfg.Export)
	if err != nil {
		logger.Fatal("failed to init pdf renderer", zap.Error(err))
	}
	archiver := newArchiver(ctx, cfg.Archive, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	state := repository.NewStateRepository(store, logger)
	userRepo := repository.NewUserRepository(state)
	taskRepo := repository.NewTaskRepository(state)
	deadlineRepo := repository.NewDeadlineRepository(state)
	scheduleRepo := repository.NewScheduleRepository(state)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Sessions:   sessions,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	plannerService := service.NewPlannerService(service.PlannerDependencies{
		TaskRepo:     taskRepo,
		DeadlineRepo: deadlineRepo,
		ScheduleRepo: scheduleRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	timetableService := service.NewTimetableService(service.TimetableDependencies{
		DeadlineRepo: deadlineRepo,
		ScheduleRepo: scheduleRepo,
		Location:     cfg.App.Location(),
		Logger:       logger,
	})
	exportService := service.NewExportService(service.ExportDependencies{
		Exporter:   export.NewExporter(renderer),
		Archiver:   archiver,
		Timetables: timetableService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	checks := map[string]handlers.Pinger{}
	if pg.Configured() {
		checks["postgres"] = pg
	}
	if redis.Configured() {
		checks["redis"] = redis
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	cookie := handlers.CookieSettings{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, checks),
		Auth:              handlers.NewAuthHandler(authService, cookie),
		Planner:           handlers.NewPlannerHandler(authService, plannerService),
		Timetable:         handlers.NewTimetableHandler(authService, timetableService),
		Export:            handlers.NewExportHandler(authService, exportService),
		SessionMiddleware: auth.NewSessionMiddleware(authService.TokenManager(), sessions, cfg.Auth.CookieName),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func newStore(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) (persistence.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		if !pg.Configured() {
			return nil, errors.New("postgres store selected but no database connection")
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				return nil, err
			}
		}
		return persistence.NewPostgresStore(pg.PoolHandle())
	default:
		logger.Info("using file store", zap.String("path", cfg.Store.Path))
		return persistence.NewFileStore(cfg.Store.Path)
	}
}

func newSessionStore(ctx context.Context, cfg *config.Config, redis *persistence.Redis, logger *zap.Logger) auth.SessionStore {
	if cfg.Auth.SessionDriver == config.SessionDriverRedis {
		return auth.NewRedisSessionStore(redis)
	}
	store := auth.NewMemorySessionStore()
	worker.StartSessionSweeper(ctx, store, cfg.Auth.SessionSweepInterval(), logger)
	return store
}

func newRenderer(cfg config.ExportConfig) (export.Renderer, error) {
	if cfg.Engine == config.ExportEngineWkhtmltopdf {
		return export.NewWkhtmltopdfRenderer(cfg.WkhtmltopdfPath, cfg.PageSize)
	}
	return export.NewFPDFRenderer(cfg.PageSize), nil
}

func newArchiver(ctx context.Context, cfg config.ArchiveConfig, logger *zap.Logger) export.Archiver {
	if !cfg.Enabled() {
		return nil
	}
	archiver, err := export.NewS3Archiver(ctx, cfg)
	if err != nil {
		logger.Warn("export archive disabled", zap.Error(err))
		return nil
	}
	logger.Info("archiving exports", zap.String("bucket", cfg.Bucket))
	return archiver
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

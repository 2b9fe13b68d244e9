package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/diabetes-care-service/internal/api/http"
	"github.com/spec-kit/diabetes-care-service/internal/api/http/handlers"
	"github.com/spec-kit/diabetes-care-service/internal/auth"
	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/events"
	"github.com/spec-kit/diabetes-care-service/internal/observability"
	"github.com/spec-kit/diabetes-care-service/internal/persistence"
	"github.com/spec-kit/diabetes-care-service/internal/repository"
	"github.com/spec-kit/diabetes-care-service/internal/service"
	"github.com/spec-kit/diabetes-care-service/internal/worker"
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

	pool := pg.PoolHandle()
	patientRepo := repository.NewPatientRepository(pool)
	endoRepo := repository.NewEndocrinologistRepository(pool)
	readingRepo := repository.NewReadingRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	consumableRepo := repository.NewConsumableRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	throttle := service.NewLoginThrottle(redis, cfg.Auth, logger)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		PatientRepo:         patientRepo,
		EndocrinologistRepo: endoRepo,
		Throttle:            throttle,
	})
	patientService := service.NewPatientService(patientRepo, cfg.Auth.BcryptCost)
	recordService := service.NewRecordService(service.RecordDependencies{
		ReadingRepo:    readingRepo,
		EquipmentRepo:  equipmentRepo,
		ConsumableRepo: consumableRepo,
		PatientRepo:    patientRepo,
		Dispatcher:     dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, cfg.Alert, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Patients:       handlers.NewPatientsHandler(patientService, recordService),
		Me:             handlers.NewMeHandler(patientService, recordService),
		Records:        handlers.NewRecordsHandler(recordService),
		AuthMiddleware: authMiddleware,
		StaticDir:      cfg.App.StaticDir,
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

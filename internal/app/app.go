package app

import (
	"context"
	"net/http"
	"time"

	"medexam_backend/internal/config"
	"medexam_backend/internal/repository"
	"medexam_backend/internal/service"
	"medexam_backend/pkg/database"
	"medexam_backend/pkg/logger"
	"medexam_backend/pkg/monitoring"
	"medexam_backend/pkg/tracing"

	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client

	Store     *repository.ContentStore
	Questions *service.QuestionDeletionService
	Papers    *service.PaperDeletionService

	tracer  *sdktrace.TracerProvider
	metrics *http.Server
}

type services struct {
	questions *service.QuestionDeletionService
	papers    *service.PaperDeletionService
}

func (a *App) initServices(store *repository.ContentStore, rdb *redis.Client) *services {
	var cache service.ContentCache
	if rdb != nil {
		cache = repository.NewContentCacheRepository(rdb)
	}

	s := &services{}
	s.questions = service.NewQuestionDeletionService(store, cache)
	s.papers = service.NewPaperDeletionService(store, s.questions, cache)
	return s
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Debug("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.App.Mode)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Error("Failed to migrate database", zap.Error(err))
			app.Close()
			return nil, err
		}
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			// cache invalidation is optional; the content core works without it
			logger.Log.Warn("Redis unavailable, cache invalidation disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.App.Name, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			app.Close()
			return nil, err
		}
		app.tracer = tp
	}

	monitoring.Init()
	if cfg.Metrics.Addr != "" {
		app.metrics = monitoring.Serve(cfg.Metrics.Addr)
		logger.Log.Info("Metrics endpoint started", zap.String("addr", cfg.Metrics.Addr))
	}

	app.Store = repository.NewContentStore(db)
	s := app.initServices(app.Store, app.Redis)
	app.Questions = s.questions
	app.Papers = s.papers

	return app, nil
}

// Close releases every resource NewApp acquired.
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.metrics != nil {
		if err := a.metrics.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown metrics endpoint", zap.Error(err))
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	logger.Log.Sync()
}

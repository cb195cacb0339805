package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/restkit-backend/internal/data/cache"
	"github.com/yungbote/restkit-backend/internal/data/db"
	"github.com/yungbote/restkit-backend/internal/data/fixtures"
	httpserver "github.com/yungbote/restkit-backend/internal/http"
	httpH "github.com/yungbote/restkit-backend/internal/http/handlers"
	"github.com/yungbote/restkit-backend/internal/http/response"
	"github.com/yungbote/restkit-backend/internal/observability"
	"github.com/yungbote/restkit-backend/internal/platform/apierr"
	"github.com/yungbote/restkit-backend/internal/platform/logger"
	"github.com/yungbote/restkit-backend/internal/rest/controller"
	"github.com/yungbote/restkit-backend/internal/rest/resource"
)

type App struct {
	Log         *logger.Logger
	Cfg         Config
	DB          *db.Service
	Redis       *goredis.Client
	Metrics     *observability.Metrics
	Repos       Repos
	Resources   Resources
	Controllers Controllers
	Server      *httpserver.Server

	otelShutdown func(context.Context) error
}

func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// New connects the stores and wires the HTTP server.
func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel)
	a.Metrics = observability.Init()

	dbService, err := db.NewService(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.DB = dbService
	if cfg.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			a.Close(ctx)
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}

	a.Redis, err = cache.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, caching disabled", "error", err)
		a.Redis = nil
	}

	a.Repos = wireRepos(dbService.DB(), log)
	a.Resources = wireResources(a.Repos, resource.Deps{
		Log:      log,
		Redis:    a.Redis,
		CacheTTL: cfg.Redis.TTL,
		Metrics:  a.Metrics,
	})
	a.Controllers, err = BuildControllers(log, a.Resources, cfg.ClassesFile, a.Metrics)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	a.Server = httpserver.NewServer(httpserver.RouterConfig{
		Log:           log.With("component", "http"),
		Metrics:       a.Metrics,
		ServiceName:   cfg.Otel.ServiceName,
		Tracing:       cfg.Otel.Enabled,
		CORSOrigins:   cfg.CORSOrigins,
		HealthHandler: httpH.NewHealthHandlerWithDeps(httpH.HealthHandlerDeps{Log: log, DB: dbService.DB(), Redis: a.Redis}),
		Routes:        a.Controllers.Routes(),
	})
	return a, nil
}

// BuildControllers resolves class tables and wires one controller per
// route. It touches no store, so the classes command can call it with
// resources built over nil repos.
func BuildControllers(log *logger.Logger, res Resources, classesFile string, metrics *observability.Metrics) (Controllers, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return Controllers{}, fmt.Errorf("register classes: %w", err)
	}
	tables, err := LoadClassTables(classesFile)
	if err != nil {
		return Controllers{}, err
	}
	resolvers, err := NewResolvers(catalog, tables)
	if err != nil {
		return Controllers{}, err
	}
	handler := response.NewHandler(log, apierr.NewClassifier(controller.ErrorRules()...))
	return wireControllers(log, res, resolvers, handler, metrics)
}

// OfflineControllers wires controllers without any store.
func OfflineControllers(log *logger.Logger, classesFile string) (Controllers, error) {
	res := wireResources(Repos{}, resource.Deps{Log: log})
	return BuildControllers(log, res, classesFile, nil)
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr)
	return a.Server.Run(ctx, a.Cfg.Addr, a.Cfg.ShutdownTimeout)
}

// SeedRoles loads the role fixtures.
func (a *App) SeedRoles(ctx context.Context) error {
	loader := fixtures.NewLoader(a.DB.DB(), a.Log, fixtures.Roles{})
	_, err := loader.Load(ctx)
	return err
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}

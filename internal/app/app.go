package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/governance"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/identity"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/notification"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/module/team"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/cache"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/config"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/database"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/logger"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/metrics"
	"github.com/NorthstarWang/project-management-platform-sub001/internal/shared/middleware"
)

// App assembles configuration, storage, services, and the HTTP server.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	server *http.Server

	db    *gorm.DB
	redis redis.UniversalClient
}

// stores groups the storage-layer dependencies behind their interfaces
// so the backend can be swapped by configuration.
type stores struct {
	users      identity.Store
	directory  team.Directory
	projects   team.ProjectStore
	governance governance.Store
}

// New builds the application from configuration.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{cfg: cfg, logger: log}

	st, err := a.buildStores()
	if err != nil {
		return nil, err
	}

	notifier, err := a.buildNotifier()
	if err != nil {
		return nil, err
	}

	m := metrics.New("pmp")

	identityService := identity.NewService(st.users, log)
	teamService := team.NewService(st.directory, st.users, log)
	governanceService := governance.NewService(
		st.governance, st.directory, st.users, st.projects, notifier, log)

	router := a.buildRouter(m,
		identity.NewHandler(identityService),
		team.NewHandler(teamService, st.users),
		governance.NewHandler(governanceService, m),
	)

	a.server = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

// buildStores selects the storage backend.
func (a *App) buildStores() (*stores, error) {
	switch a.cfg.Store.Backend {
	case config.StorePostgres:
		db, err := database.New(&a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.AutoMigrate(
			&identity.User{},
			&team.Team{},
			&team.Membership{},
			&team.Project{},
			&governance.JoinRequest{},
			&governance.Invitation{},
			&governance.CreationRequest{},
		); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		a.db = db
		return &stores{
			users:      identity.NewPostgresStore(db),
			directory:  team.NewPostgresDirectory(db),
			projects:   team.NewPostgresProjectStore(db),
			governance: governance.NewPostgresStore(db),
		}, nil
	default:
		return &stores{
			users:      identity.NewMemoryStore(),
			directory:  team.NewMemoryDirectory(),
			projects:   team.NewMemoryProjectStore(),
			governance: governance.NewMemoryStore(),
		}, nil
	}
}

// buildNotifier selects the notification backend.
func (a *App) buildNotifier() (notification.Notifier, error) {
	if a.cfg.Notify.Backend == config.NotifierRedis {
		client, err := cache.NewRedisClient(&a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redis = client
		return notification.NewRedisNotifier(client, a.logger), nil
	}
	return notification.NewZapNotifier(a.logger), nil
}

// routeRegistrar is implemented by module handlers.
type routeRegistrar interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// buildRouter assembles middleware and module routes.
func (a *App) buildRouter(m *metrics.Metrics, handlers ...routeRegistrar) *gin.Engine {
	if a.cfg.Log.Format == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(a.logger),
		middleware.Logging(a.logger),
		middleware.Metrics(m),
		cors.Default(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(a.cfg.Auth.JWTSecret))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	return router
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("server starting",
		zap.String("address", a.cfg.Server.Address),
		zap.String("store_backend", a.cfg.Store.Backend),
		zap.String("notify_backend", a.cfg.Notify.Backend),
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("server shutting down")

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := cache.Close(a.redis); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}

	_ = a.logger.Sync()
	return nil
}

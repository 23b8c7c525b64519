// Package app wires configuration, adapters and features into a runnable service.
package app

import (
	"context"
	"fmt"
	"time"

	"dashboard-reminders/internal/core/cache"
	"dashboard-reminders/internal/core/config"
	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/core/mgrclient"
	"dashboard-reminders/internal/core/server"
	callhomehandler "dashboard-reminders/internal/features/callhome/handler"
	callhomeservice "dashboard-reminders/internal/features/callhome/service"
	notificationadapters "dashboard-reminders/internal/features/notifications/adapters"
	notificationhandler "dashboard-reminders/internal/features/notifications/handler"
	notificationports "dashboard-reminders/internal/features/notifications/ports"
	notificationservice "dashboard-reminders/internal/features/notifications/service"
	"dashboard-reminders/internal/features/reminders/adapters"
	"dashboard-reminders/internal/features/reminders/domain"
	"dashboard-reminders/internal/features/reminders/handler"
	"dashboard-reminders/internal/features/reminders/ports"
	"dashboard-reminders/internal/features/reminders/service"
	"dashboard-reminders/internal/features/reminders/view"

	"go.uber.org/zap"
)

const (
	cachePrefix     = "dashboard-reminders"
	shutdownTimeout = 10 * time.Second
)

// Options are the command line settings.
type Options struct {
	// ConfigPath is the directory holding the .env file.
	ConfigPath string
}

// App is the wired service.
type App struct {
	cfg *config.AppConfig
	mgr *mgrclient.Client
	// cache is nil when Redis is not reachable and not required.
	cache cache.Cache

	notifications *notificationservice.NotificationServiceImpl
	registry      *service.Registry
	banners       []*view.Banner
	callHome      *callhomeservice.CallHomeServiceImpl
	// storageInsights is nil unless the Storage Insights reminder is registered.
	storageInsights *callhomeservice.StorageInsightsServiceImpl
	refresher       *service.Refresher
}

// Build loads the configuration, initializes the logger and wires every component.
func Build(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	return New(ctx, cfg)
}

// New wires every component from cfg. The logger must already be initialized.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("build_flavor", cfg.BuildFlavor),
		zap.String("snooze_backend", cfg.Reminders.SnoozeBackend),
	)

	a := &App{
		cfg: cfg,
		mgr: mgrclient.New(cfg.Mgr),
	}

	redisCache, err := connectRedis(ctx, cfg)
	switch {
	case err == nil:
		a.cache = redisCache
	case cfg.Reminders.SnoozeBackend == config.SnoozeBackendRedis:
		return nil, err
	default:
		l.Warn("Redis unavailable, keeping notifications in memory", zap.Error(err))
	}

	var repo notificationports.NotificationRepository = notificationadapters.NewMemoryNotificationRepository()
	if a.cache != nil {
		repo = notificationadapters.NewRedisNotificationRepository(a.cache)
	}
	a.notifications = notificationservice.NewNotificationService(repo, cfg.Reminders.NotificationHistory)

	a.registry = service.NewRegistry(cfg.BuildFlavor)
	for _, f := range domain.Features() {
		svc := service.NewReminderService(f, a.statusSource(f), a.snoozeStore(f), a.notifications,
			service.WithRemindAfterDays(cfg.Reminders.RemindAfterDays))
		if _, err := a.registry.Register(svc); err != nil {
			return nil, err
		}
	}

	callHomeReminder, err := a.registry.Get(domain.CallHome.Name)
	if err != nil {
		return nil, err
	}

	for _, svc := range a.registry.All() {
		var opts []view.Option
		if svc.Feature().Name == domain.StorageInsights.Name {
			opts = append(opts, view.WithPrerequisite(callHomeReminder))
		}
		a.banners = append(a.banners, view.NewBanner(svc, opts...))
	}

	a.callHome = callhomeservice.NewCallHomeService(a.mgr, callHomeReminder, a.notifications,
		time.Duration(cfg.Reminders.ReconnectPollSeconds)*time.Second,
		time.Duration(cfg.Reminders.ReconnectTimeoutSeconds)*time.Second,
	)

	if insights, err := a.registry.Get(domain.StorageInsights.Name); err == nil {
		a.storageInsights = callhomeservice.NewStorageInsightsService(a.mgr,
			adapters.NewModuleStatus(a.mgr, adapters.CallHomeModule),
			adapters.NewTenantStatus(a.mgr, adapters.CallHomeModule),
			insights, a.notifications,
		)
	}

	a.refresher, err = service.NewRefresher(a.registry, cfg.Reminders.RefreshSchedule, 2*cfg.MgrTimeout())
	if err != nil {
		return nil, err
	}

	return a, nil
}

func connectRedis(ctx context.Context, cfg *config.AppConfig) (cache.Cache, error) {
	c, err := cache.NewRedisAdapter(cfg.Redis.URL, cachePrefix)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.MgrTimeout())
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to reach Redis: %w", err)
	}
	return c, nil
}

func (a *App) statusSource(f domain.Feature) ports.StatusSource {
	if f.Name == domain.StorageInsights.Name {
		return adapters.NewTenantStatus(a.mgr, adapters.CallHomeModule)
	}
	return adapters.NewModuleStatus(a.mgr, adapters.CallHomeModule)
}

func (a *App) snoozeStore(f domain.Feature) ports.SnoozeStore {
	if a.cfg.Reminders.SnoozeBackend == config.SnoozeBackendRedis {
		return adapters.NewRedisSnoozeStore(a.cache, f.ConfigKey)
	}
	return adapters.NewMgrSnoozeStore(a.mgr, adapters.DashboardModule, f.ConfigKey)
}

// Registry returns the active reminders.
func (a *App) Registry() *service.Registry {
	return a.registry
}

// Banners returns the server-side banner views.
func (a *App) Banners() []*view.Banner {
	return a.banners
}

// Check resolves every reminder once and waits for the results.
func (a *App) Check(ctx context.Context) []service.Result {
	ctx, cancel := context.WithTimeout(ctx, 2*a.cfg.MgrTimeout())
	defer cancel()

	return a.registry.ResolveAll(ctx)
}

// NewServer builds the HTTP server with every route mounted.
func (a *App) NewServer() *server.Server {
	srv := server.New(a.cfg)
	srv.Mount(
		handler.NewReminderHandler(a.banners, a.notifications),
		notificationhandler.NewNotificationHandler(a.notifications),
		callhomehandler.NewCallHomeHandler(a.callHome),
	)
	if a.storageInsights != nil {
		srv.Mount(callhomehandler.NewStorageInsightsHandler(a.storageInsights))
	}

	srv.AddHealthCheck("mgr", a.mgr.Ping)
	if a.cache != nil {
		srv.AddHealthCheck("redis", a.cache.Ping)
	}
	return srv
}

// Serve starts the reminders, the refresh schedule and the HTTP server, and
// blocks until ctx is cancelled or the server fails.
func (a *App) Serve(ctx context.Context) error {
	for _, b := range a.banners {
		b.Attach()
	}
	a.registry.Start(ctx)
	a.refresher.Start()

	srv := a.NewServer()
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Get().Warn("Server shutdown incomplete", zap.Error(err))
	}
	a.refresher.Stop(shutdownCtx)
	for _, b := range a.banners {
		b.Detach()
	}

	return runErr
}

// Close releases the Redis connection.
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

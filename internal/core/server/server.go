package server

import (
	"context"
	"fmt"
	"time"

	"dashboard-reminders/internal/core/config"
	"dashboard-reminders/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "dashboard-reminders/docs/swagger"
)

// healthTimeout bounds each dependency check of /healthz.
const healthTimeout = 3 * time.Second

// Routes is implemented by every feature handler.
type Routes interface {
	Register(router fiber.Router)
}

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
	// checks are run by /healthz, keyed by dependency name.
	checks map[string]HealthCheck
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "dashboard-reminders",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	s := &Server{
		App:    app,
		cfg:    cfg,
		checks: make(map[string]HealthCheck),
	}
	app.Get("/healthz", s.health)

	return s
}

// Mount registers the routes of every handler.
func (s *Server) Mount(routes ...Routes) {
	for _, r := range routes {
		r.Register(s.App)
	}
}

// AddHealthCheck adds a dependency check to /healthz.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.checks[name] = check
}

func (s *Server) health(c *fiber.Ctx) error {
	status := fiber.StatusOK
	result := make(map[string]string, len(s.checks))

	for name, check := range s.checks {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			logger.Get().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			result[name] = err.Error()
			status = fiber.StatusServiceUnavailable
			continue
		}
		result[name] = "ok"
	}

	return c.Status(status).JSON(result)
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for open ones until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Get().Info("Stopping server")
	return s.App.ShutdownWithContext(ctx)
}

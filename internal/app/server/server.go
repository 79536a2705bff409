// Package server assembles the Fiber application: middleware chain, route
// registration and lifecycle.
package server

import (
	"context"

	"github.com/filegram/panel/internal/app/repository"
	"github.com/filegram/panel/internal/app/service"
	"github.com/filegram/panel/internal/http/handler"
	"github.com/filegram/panel/internal/http/middleware"
	"github.com/filegram/panel/internal/infra/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies bundles everything the HTTP server needs.
type Dependencies struct {
	Logger     *zap.Logger
	Redis      *redis.Client
	Resolver   middleware.IdentityResolver
	Repos      *repository.Repositories
	Links      service.LinkService
	Admins     service.AdminService
	Broadcasts service.BroadcastService
	Env        service.EnvService
	Status     service.StatusService
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerRoutes()
	return s
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) registerRoutes() {
	log := s.deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s.app.Use(middleware.Recovery(log))
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Logger(log))
	s.app.Use(middleware.Metrics())
	if s.deps.Redis != nil {
		s.app.Use(middleware.RateLimit(s.deps.Redis, middleware.DefaultRateLimitConfig(), log))
	}

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := s.app.Group("/api",
		middleware.Authenticate(s.deps.Resolver, log),
		middleware.RequireRole(auth.RoleAdmin))

	h := handler.NewAPIHandler(handler.APIDeps{
		Logger:     log,
		Repos:      s.deps.Repos,
		Links:      s.deps.Links,
		Admins:     s.deps.Admins,
		Broadcasts: s.deps.Broadcasts,
		Env:        s.deps.Env,
		Status:     s.deps.Status,
	})
	h.Register(api, middleware.RequireRole(auth.RoleOwner))
}

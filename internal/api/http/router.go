package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/http/handlers"
	"github.com/spec-kit/restaurant-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication gate runs on every
// route and never rejects by itself; the Require* guards enforce
// endpoint-level access.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Authenticate)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", auth.RequireAdmin(), cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Auth.Login)

	users := app.Group("/users")
	users.Post("", cfg.Users.Create)
	users.Get("", auth.RequireAdmin(), cfg.Users.List)
	users.Get("/search", auth.RequireAdmin(), cfg.Users.Search)
	users.Get("/me", auth.RequireAuthenticated(), cfg.Users.Me)
	users.Get("/email/:email", auth.RequireAdmin(), cfg.Users.GetByEmail)
	users.Get("/:id", auth.RequireAuthenticated(), cfg.Users.Get)
	users.Put("/:id", auth.RequireAuthenticated(), cfg.Users.Update)
	users.Put("/:id/password", auth.RequireAuthenticated(), cfg.Users.ChangePassword)
	users.Delete("/:id", auth.RequireMaster(), cfg.Users.Delete)
}

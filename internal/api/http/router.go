package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Jack-WebDev/ahsa/internal/api/http/handlers"
	"github.com/Jack-WebDev/ahsa/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Registration, login, and the whole
// password recovery flow are public; everything else sits behind the
// refresh middleware, with token-pair propagation wrapped around it.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	users := app.Group("/api/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/forgot-password", cfg.Users.ForgotPassword)
	users.Post("/verify-otp", cfg.Users.VerifyOTP)
	users.Post("/reset-password", cfg.Users.ResetPassword)

	protected := users.Group("", cfg.AuthMiddleware.PropagateTokens, cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Users.Me)
}

package routes

import (
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/config"
	"github.com/ecoreforest/ecoreforest-backend/internal/handlers"
	"github.com/ecoreforest/ecoreforest-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	recommendHandler *handlers.RecommendHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Public
	api.Get("/health", healthHandler.Check)
	api.Get("/plans", subscriptionHandler.Plans)
	api.Get("/regions", recommendHandler.Regions)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify", authHandler.Verify)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/forgot-password", authHandler.ForgotPassword)

	// Protected routes (JWT required) - apply middleware per route so
	// it never affects the public ones
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Get("/entitlement", middleware.JWTProtected(cfg), subscriptionHandler.Entitlement)

	api.Post("/subscriptions", middleware.JWTProtected(cfg), subscriptionHandler.Activate)
	api.Get("/subscriptions/active", middleware.JWTProtected(cfg), subscriptionHandler.Active)

	api.Post("/recommendations", middleware.JWTProtected(cfg), recommendHandler.Generate)
	api.Get("/recommendations/history", middleware.JWTProtected(cfg), recommendHandler.History)
	api.Get("/recommendations/:id/export", middleware.JWTProtected(cfg), recommendHandler.ExportCSV)
}

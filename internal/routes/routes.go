package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	gate *authz.Gate,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// Per-IP sliding window; RATE_LIMIT_PER_MINUTE=0 disables it.
	if cfg.RateLimitPerMinute > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMinute,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	api.Get("/health", healthHandler.Check)

	jwt := middleware.JWTProtected(cfg)
	allow := func(action authz.Action) fiber.Handler {
		return middleware.Authorize(gate, cfg, action)
	}

	reports := api.Group("/reports")
	reports.Post("/", jwt, allow(authz.ActionCreateReport), reportHandler.CreateReport)
	reports.Get("/", jwt, allow(authz.ActionGetReports), reportHandler.ListReports)
	// Registered before /:id so "mine" is not taken as a report id.
	reports.Get("/mine", jwt, allow(authz.ActionGetUserReports), reportHandler.ListMyReports)
	reports.Get("/:id", reportHandler.GetReport)
	reports.Patch("/:id", jwt, allow(authz.ActionUpdateReport), reportHandler.UpdateReport)
	reports.Delete("/:id", jwt, allow(authz.ActionDeleteReport), reportHandler.DeleteReport)
}

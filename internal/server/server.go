// Package server assembles the Fiber application serving the report API.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/services"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// New wires services, handlers and middleware around repo.
func New(cfg *config.Config, gate *authz.Gate, repo repository.ReportRepository, validate *validator.Validate) *fiber.App {
	reportService := services.NewReportService(repo, gate, validate)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(repo, cfg.DBDriver)

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})
	app.Use(middleware.RequestContext())

	routes.Setup(app, cfg, gate, reportHandler, healthHandler)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		slog.ErrorContext(c.UserContext(), "unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

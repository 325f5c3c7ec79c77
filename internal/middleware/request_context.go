package middleware

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/logging"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// RequestContext seeds the request's user context with the request id and the
// Sentry hub, so service logs can be correlated. Must run after requestid.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ctx = logging.WithAttrs(ctx, slog.String("request_id", rid))
		}
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			ctx = sentry.SetHubOnContext(ctx, hub)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func withCallerAttrs(ctx context.Context, caller identity.Caller) context.Context {
	return logging.WithAttrs(ctx,
		slog.String("user_id", caller.ID.String()),
		slog.String("role", caller.Role),
	)
}

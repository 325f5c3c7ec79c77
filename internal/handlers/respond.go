package handlers

import (
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// respondError writes client errors with their kind. Anything else is a 5xx
// and keeps its details out of the response; the service has logged it.
func respondError(c *fiber.Ctx, err error) error {
	if e, ok := apperr.As(err); ok {
		return c.Status(e.Status()).JSON(dto.ErrorResponse{
			Error: true, Kind: string(e.Kind), Message: e.Message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

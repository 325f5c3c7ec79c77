package middleware

import (
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected verifies the bearer token and stores it under Locals("user").
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Kind:    string(apperr.KindUnauthorized),
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

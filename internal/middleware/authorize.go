package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/authz"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/identity"
	"github.com/gofiber/fiber/v2"
)

// Authorize resolves the caller from the verified JWT and checks that its role
// may perform action. Must run after JWTProtected.
//
// The caller's role comes from the token's "role" claim, except that user ids
// listed in ADMIN_USER_IDS are always treated as admin.
func Authorize(gate *authz.Gate, cfg *config.Config, action authz.Action) fiber.Handler {
	adminUserIDs := parseCSV(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		caller, err := identity.FromToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Kind: string(apperr.KindUnauthorized), Message: "Unauthorized",
			})
		}

		if contains(adminUserIDs, caller.ID.String()) {
			caller.Role = authz.RoleAdmin
		}

		if err := gate.Check(caller.Role, action); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Kind: string(apperr.KindForbidden), Message: err.Error(),
			})
		}

		identity.Set(c, caller)
		c.SetUserContext(withCallerAttrs(c.UserContext(), caller))
		return c.Next()
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(p))
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

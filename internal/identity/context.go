// Package identity resolves the authenticated caller of a request.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerKey = "caller"

// DefaultRole is assumed when a token carries no role claim.
const DefaultRole = "user"

type Caller struct {
	ID   uuid.UUID
	Role string
}

// FromToken extracts the caller from the JWT stored by the jwt middleware.
func FromToken(c *fiber.Ctx) (Caller, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Caller{}, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Caller{}, errors.New("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return Caller{}, err
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = DefaultRole
	}
	return Caller{ID: id, Role: role}, nil
}

// Set stores the authorized caller for downstream handlers.
func Set(c *fiber.Ctx, caller Caller) {
	c.Locals(callerKey, caller)
}

func Get(c *fiber.Ctx) (Caller, bool) {
	caller, ok := c.Locals(callerKey).(Caller)
	return caller, ok
}

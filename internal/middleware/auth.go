package middleware

import (
	"carmarket-backend/internal/domain"
	"carmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with the
// standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// GetActor resolves the acting principal from the session user. Handlers
// pass the result explicitly into services and policies; nothing below this
// point reads request state. Missing or malformed session data resolves to
// the anonymous actor.
func GetActor(c *fiber.Ctx) domain.Actor {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return domain.Anonymous()
	}
	id := asUint(m["user_id"])
	if id == 0 {
		return domain.Anonymous()
	}
	isStaff, _ := m["is_staff"].(bool)
	isSeller, _ := m["is_seller"].(bool)
	switch {
	case isStaff:
		return domain.AdminActor(id)
	case isSeller:
		return domain.SellerActor(id)
	default:
		return domain.BuyerActor(id)
	}
}

// asUint handles both in-process values (uint from SetSessionUser) and
// values round-tripped through the Redis JSON session (float64).
func asUint(v interface{}) uint {
	switch x := v.(type) {
	case uint:
		return x
	case int:
		if x < 0 {
			return 0
		}
		return uint(x)
	case float64:
		if x < 1 {
			return 0
		}
		return uint(x)
	}
	return 0
}

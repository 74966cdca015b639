package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	PlayerIDHeader = "X-Player-ID"
	PlayerIDQuery  = "playerId"

	// PlayerIDKey is the Locals key holding the resolved id.
	PlayerIDKey = "playerID"
)

// EnsurePlayerID resolves the caller's player id from the PlayerIDHeader
// header, falling back to the PlayerIDQuery parameter. Requests without one
// are rejected with 401.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		raw := c.Get(PlayerIDHeader)
		if raw == "" {
			raw = c.Query(PlayerIDQuery)
		}
		if raw == "" {
			return reject(c, fiber.StatusUnauthorized, "Player ID is required. Please ensure client is properly initialized.")
		}

		// fasthttp reuses the request buffer, and the id outlives the request as a seat
		c.Locals(PlayerIDKey, utils.CopyString(raw))
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "" when there is none.
func PlayerID(c *fiber.Ctx) string {
	id, _ := c.Locals(PlayerIDKey).(string)
	return id
}

func reject(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade lets through only upgrade requests that name a game and
// carry a player id. It must run after EnsurePlayerID.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch {
		case !websocket.IsWebSocketUpgrade(c):
			return fiber.ErrUpgradeRequired
		case c.Params("gameId") == "":
			return reject(c, fiber.StatusBadRequest, "game ID is required")
		case PlayerID(c) == "":
			return reject(c, fiber.StatusUnauthorized, "player ID is required")
		}
		return c.Next()
	}
}

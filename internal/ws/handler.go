package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// RequireUpgrade rejects plain HTTP requests to the WebSocket route.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return c.SendStatus(fiber.StatusUpgradeRequired)
}

// Handler registers the connection with the hub and keeps it open until the client
// leaves or the hub stops. Once Run has returned, new connections are closed at once.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		h.handlers.Add(1)
		defer h.handlers.Done()

		select {
		case h.Register <- c:
		case <-h.done:
			sendClose(c)
			return
		}
		defer func() {
			select {
			case h.Unregister <- c:
			case <-h.done:
			}
		}()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}

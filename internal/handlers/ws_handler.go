package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/gigflow/internal/realtime"
)

type WSHandler struct {
	Hub *realtime.Hub
}

// Upgrade rejects non-websocket requests and pins the caller id for Serve.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	uid, err := getUserUUID(c)
	if err != nil {
		return fail(c, err)
	}
	c.Locals("wsUserId", uid)
	return c.Next()
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		uid, ok := conn.Locals("wsUserId").(uuid.UUID)
		if !ok {
			_ = conn.Close()
			return
		}
		realtime.Serve(h.Hub, conn, uid)
	})
}

package realtime

import (
	"encoding/json"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type inbound struct {
	Type string `json:"type"`
}

var pong = []byte(`{"type":"pong"}`)

// Serve joins the connection to the hub for userID and pumps messages until
// the peer goes away. Clients may send {"type":"ping"}.
func Serve(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := NewClient(userID)
	hub.Join(client)
	defer hub.Leave(client)

	logger := log.WithFields(log.Fields{"user_id": userID, "client_id": client.ID})
	logger.Info("websocket connected")

	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.WithError(err).Debug("websocket write failed")
				return
			}
		}
	}()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			logger.WithError(err).Info("websocket disconnected")
			return
		}
		var in inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		if in.Type == "ping" {
			hub.Reply(client, pong)
		}
	}
}

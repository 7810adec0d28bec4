package server

import (
	"errors"
	"log/slog"

	"moodboard/internal/notifications"
	"moodboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedWebSocketUpgrade rejects plain HTTP requests to the live feed endpoint.
func (s *Server) FeedWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// FeedWebSocketHandler streams board events to an anonymous subscriber. Each
// message is an {"type","payload"} envelope; clients re-fetch the ranked feed
// when they see one.
func (s *Server) FeedWebSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client, err := s.hub.Register(conn)
		if err != nil {
			reason := "unavailable"
			if errors.Is(err, notifications.ErrConnectionLimit) {
				reason = "connection_limit"
			}
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","payload":{"reason":"`+reason+`"}}`))
			_ = conn.Close()
			return
		}

		observability.Logger.Info("live feed client connected", slog.String("client_id", client.ID))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"connected","payload":{"client_id":"`+client.ID+`"}}`))

		go client.WritePump()
		client.ReadPump()
		observability.Logger.Info("live feed client disconnected", slog.String("client_id", client.ID))
	})
}

package server

import (
	"encoding/json"
	"log"

	"safespace/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketFeedHandler handles WebSocket connections for the live feed. Each
// client gets the current state on connect and then receives every render,
// live-feed message, and notice until it disconnects. All writes go through
// the hub's per-client pump; this goroutine only reads.
func (s *Server) WebSocketFeedHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id := s.feedHub.Register(conn)
		defer s.feedHub.Unregister(id)

		log.Printf("WebSocket: client %s connected to feed", id)

		// Initial snapshot so the client does not have to wait for the next
		// action to render.
		snap := s.store.Snapshot()
		s.feedHub.Send(id, FeedEvent{Type: "render", View: s.controller.View(), State: &snap})

		// Read loop: clients may send dismiss requests; everything else is
		// ignored. The loop also detects disconnects.
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var incoming struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(message, &incoming); err != nil {
				log.Printf("WebSocket: invalid message from client %s", id)
				continue
			}

			switch incoming.Type {
			case "dismiss":
				s.controller.DismissOverlays()
			case "ping":
				s.feedHub.Send(id, FeedEvent{Type: "pong"})
			}
		}

		log.Printf("WebSocket: client %s disconnected from feed", id)
	})
}

var _ app.Renderer = (*FeedHub)(nil)

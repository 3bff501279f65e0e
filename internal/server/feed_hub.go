// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"safespace/internal/app"
	"safespace/internal/models"
	"safespace/internal/notify"
	"safespace/internal/observability"
	"safespace/internal/store"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Buffered outbound events per client before drops kick in.
	sendBufferSize = 256
)

// FeedEvent is the envelope pushed to connected clients. Type is "render"
// for a full snapshot after an action, "message" for a single live-feed
// chat message, or "notice" for a transient notification.
type FeedEvent struct {
	Type    string              `json:"type"`
	View    app.View            `json:"view,omitempty"`
	State   *store.Snapshot     `json:"state,omitempty"`
	Message *models.ChatMessage `json:"message,omitempty"`
	Notice  *notify.Notice      `json:"notice,omitempty"`
}

// wsConn is the connection surface the hub writes to. *websocket.Conn
// satisfies it; tests substitute a recording stub.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// feedClient pairs a connection with its outbound buffer. The write pump is
// the connection's only writer; everything reaches the peer through send.
type feedClient struct {
	id   string
	conn wsConn
	send chan []byte
}

// writePump drains the send channel onto the connection. It exits when the
// hub closes the channel or the peer stops accepting writes.
func (c *feedClient) writePump() {
	defer func() { _ = c.conn.Close() }()

	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("FeedHub: failed to write to connection %s: %v", c.id, err)
			return
		}
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
}

// trySend enqueues without blocking. A slow consumer loses events rather
// than stalling the broadcaster.
func (c *feedClient) trySend(message []byte) {
	select {
	case c.send <- message:
	default:
		observability.WebSocketDroppedMessages.WithLabelValues("buffer_full").Inc()
		log.Printf("FeedHub: client %s buffer full, dropped event", c.id)
	}
}

// FeedHub fans events out to every connected WebSocket client. It implements
// app.Renderer, so each completed controller action reaches the clients as a
// fresh snapshot.
type FeedHub struct {
	mu    sync.RWMutex
	conns map[string]*feedClient
}

// NewFeedHub creates an empty hub.
func NewFeedHub() *FeedHub {
	return &FeedHub{conns: make(map[string]*feedClient)}
}

// Register adds a connection, starts its write pump, and returns its id for
// Send and Unregister.
func (h *FeedHub) Register(conn wsConn) string {
	client := &feedClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.mu.Lock()
	h.conns[client.id] = client
	h.mu.Unlock()

	go client.writePump()
	observability.WebSocketConnectionsTotal.Inc()
	return client.id
}

// Unregister removes a connection and shuts down its write pump.
func (h *FeedHub) Unregister(id string) {
	h.mu.Lock()
	client, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
		close(client.send)
	}
	h.mu.Unlock()
	if ok {
		observability.WebSocketConnectionsTotal.Dec()
	}
}

// Send delivers an event to one client.
func (h *FeedHub) Send(id string, event FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("FeedHub: failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.conns[id]; ok {
		client.trySend(payload)
	}
}

// Render implements app.Renderer by broadcasting the snapshot.
func (h *FeedHub) Render(view app.View, snap store.Snapshot) {
	h.broadcast(FeedEvent{Type: "render", View: view, State: &snap})
}

// PushMessage broadcasts a single live-feed message.
func (h *FeedHub) PushMessage(msg models.ChatMessage) {
	h.broadcast(FeedEvent{Type: "message", Message: &msg})
}

// PushNotice broadcasts a notification.
func (h *FeedHub) PushNotice(n notify.Notice) {
	h.broadcast(FeedEvent{Type: "notice", Notice: &n})
}

func (h *FeedHub) broadcast(event FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("FeedHub: failed to marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.conns {
		client.trySend(payload)
	}
}

// Shutdown stops every client's write pump; the pumps send the close frame
// and close their connections as they drain.
func (h *FeedHub) Shutdown(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.conns {
		close(client.send)
		delete(h.conns, id)
		observability.WebSocketConnectionsTotal.Dec()
	}
	return nil
}

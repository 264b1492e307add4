package http

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"taskpilot-voice/internal/domain/eventbus"
	"taskpilot-voice/internal/platform/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the control api is local only
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Envelope is the wire format for the event stream.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans pipeline events out to connected websocket clients. It
// subscribes to the bus once; clients come and go freely.
type Hub struct {
	logger *logging.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Envelope
	closed  bool
}

func NewHub(bus *eventbus.Bus, logger *logging.Logger) (*Hub, error) {
	h := &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan Envelope),
	}

	subscriptions := []struct {
		topic string
		fn    interface{}
	}{
		{eventbus.EventStateChanged, func(d eventbus.StateEventData) { h.broadcast("state", d) }},
		{eventbus.EventTranscriptReady, func(d eventbus.TranscriptEventData) { h.broadcast("transcript", d) }},
		{eventbus.EventReplyReady, func(d eventbus.ReplyEventData) { h.broadcast("reply", d) }},
		{eventbus.EventActionDispatched, func(d eventbus.ActionEventData) { h.broadcast("action", d) }},
		{eventbus.EventNotice, func(d eventbus.NoticeEventData) { h.broadcast("notice", d) }},
		{eventbus.EventCycleError, func(d eventbus.ErrorEventData) { h.broadcast("error", d) }},
	}
	for _, sub := range subscriptions {
		if err := bus.Subscribe(sub.topic, sub.fn); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// HandleConnection upgrades the request and streams events until the
// client disconnects.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WarnTag("HTTP", "websocket upgrade failed: %v", err)
		return
	}

	send := make(chan Envelope, 32)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = send
	h.mu.Unlock()

	h.logger.InfoTag("HTTP", "event stream client connected")

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan Envelope) {
	for env := range send {
		if err := conn.WriteJSON(env); err != nil {
			h.drop(conn)
			return
		}
	}
	conn.Close()
}

// readLoop drains client frames so pings and close messages are
// processed; the stream is one-directional otherwise.
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) broadcast(eventType string, data interface{}) {
	env := Envelope{Type: eventType, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, send := range h.clients {
		select {
		case send <- env:
		default:
			// slow client, disconnect rather than block the pipeline
			delete(h.clients, conn)
			close(send)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
	conn.Close()
}

// Close disconnects every client. New connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn, send := range h.clients {
		delete(h.clients, conn)
		close(send)
		conn.Close()
	}
}

package feed

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidings-dev/tidings/internal/models"
	"github.com/tidings-dev/tidings/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

const (
	EventConnected = "connected"
	EventCreated   = "created"
	EventUpdated   = "updated"
	EventDeleted   = "deleted"
)

type Event struct {
	Type         string               `json:"type"`
	Message      string               `json:"message,omitempty"`
	Announcement *models.Announcement `json:"announcement,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
	quit chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan Event, sendBuffer),
		quit: make(chan struct{}),
	}
}

func (c *client) stop() {
	c.once.Do(func() { close(c.quit) })
}

// Hub fans announcement changes out to every connected websocket client.
type Hub struct {
	upgrader websocket.Upgrader
	log      logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

func NewHub(allowedOrigins []string, log logger.Logger) *Hub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &Hub{
		log:     log,
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Serve upgrades the request and blocks until the connection goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.ClientError("feed: upgrade failed", err)
		return
	}

	c := newClient(conn)
	c.send <- Event{Type: EventConnected, Message: "Feed connection established"}

	if !h.register(c) {
		_ = conn.Close()
		return
	}
	defer h.unregister(c)

	go h.writePump(c)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.log.ClientError("feed: connection error", err)
			}
			return
		}
	}
}

// writePump is the only writer on c.conn. It owns closing the connection.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				h.log.Debug("feed: write failed", "err", err)
				h.unregister(c)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.unregister(c)
				return
			}
		case <-c.quit:
			if h.isClosed() {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
			}
			return
		}
	}
}

// Broadcast queues event for every client without waiting on the network.
// A client whose queue is full is disconnected.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- event:
		default:
			h.log.Warn("feed: dropping slow client", "queued", len(c.send))
			h.unregister(c)
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client. Later connection attempts are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.stop()
	}
}

func (h *Hub) isClosed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.closed
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()

	c.stop()
}

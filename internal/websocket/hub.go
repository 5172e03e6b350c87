// Package websocket streams record change events to connected clients. Each client only
// receives events for records the ownership gate lets it read.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"scheduling/internal/access"
)

// Event is one committed change. Owners never leave the server.
type Event struct {
	Resource string      `json:"resource"`
	Action   string      `json:"action"`
	ID       uuid.UUID   `json:"id"`
	Owners   []uuid.UUID `json:"-"`
}

// Verifier turns the ?token= query parameter into a principal.
type Verifier interface {
	Verify(raw string) (access.Principal, error)
}

// Client represents a single connected WebSocket client
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	Principal access.Principal
}

// Hub maintains the set of active clients and fans events out to them
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.Mutex

	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHub initializes a new WS Hub instance. An empty origins list accepts any origin.
func NewHub(log *zap.Logger, origins []string) *Hub {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &Hub{
		broadcast:  make(chan Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
	}
}

// Notify queues a change event. It never blocks the request path: when the queue is full
// the event is dropped.
func (h *Hub) Notify(resource, action string, id uuid.UUID, owners []uuid.UUID) {
	ev := Event{Resource: resource, Action: action, ID: id, Owners: owners}
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("change feed queue full, dropping event",
			zap.String("resource", resource), zap.String("action", action), zap.Stringer("id", id))
	}
}

// Clients returns the number of registered clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run starts the core dispatch loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("websocket client connected", zap.Stringer("user_id", client.Principal.ID))
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.log.Debug("websocket client disconnected", zap.Stringer("user_id", client.Principal.ID))
			}
			h.mu.Unlock()
		case ev := <-h.broadcast:
			h.dispatch(ev)
		}
	}
}

func (h *Hub) dispatch(ev Event) {
	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("encode change event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if access.Authorize(client.Principal, ev.Owners, access.OpRead) != access.Allow {
			continue
		}
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.clients, client)
		}
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump keeps the connection alive until the peer goes away
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		_ = c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Debug("websocket read", zap.Error(err))
			}
			return
		}
	}
}

// ServeWs authenticates the ?token= query parameter and upgrades the connection
func ServeWs(hub *Hub, c *gin.Context, verifier Verifier) {
	raw := c.Query("token")
	if raw == "" {
		hub.log.Debug("websocket connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	principal, err := verifier.Verify(raw)
	if err != nil {
		hub.log.Debug("websocket connection rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256), Principal: principal}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

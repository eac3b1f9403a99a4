package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Client wraps a connection with a write lock. gorilla/websocket supports at
// most one concurrent writer per connection, and hub pushes race the read
// loop's pong replies without serialization.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteJSON sends a JSON message under the write lock with a bounded deadline.
func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// WriteText sends a text message under the write lock with a bounded deadline.
func (c *Client) WriteText(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Hub maps a user id to the set of live WebSocket connections for that user.
// A user may hold several simultaneous sessions (multi-tab, multi-device).
// All mutation happens under the lock; the zero map entry is dropped when the
// last connection of a user goes away.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[*websocket.Conn]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]*Client),
	}
}

// Register adds the connection and returns the Client every later write to
// this connection must go through.
func (h *Hub) Register(userID uint, conn *websocket.Conn) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{conn: conn}
	h.clients[userID][conn] = client
	return client
}

func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, exists := h.clients[userID]; exists {
		delete(conns, conn)

		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// SendToUser pushes message to every live connection of the user. A missing
// entry means the user is offline and the call is a no-op. Failed connections
// are closed and pruned.
func (h *Hub) SendToUser(userID uint, message interface{}) {
	h.mu.RLock()
	conns, exists := h.clients[userID]
	if !exists || len(conns) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy so the hub lock is not held during writes
	clients := make([]*Client, 0, len(conns))
	for _, client := range conns {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("Failed to push message to user %d: %v", userID, err)
			h.Unregister(userID, client.conn)
			client.conn.Close()
		}
	}
}

// ConnectionCount reports how many live connections the user holds.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
	sendBuffer     = 256
)

// Role is what a connection may do at its table.
type Role string

const (
	RolePlayer    Role = "player"
	RoleSpectator Role = "spectator"
)

// Client is one websocket connection attached to a table room.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	tableID string
	role    Role
	table   Table
	send    chan []byte
}

// Hub maintains the table rooms and fans messages out to them.
type Hub struct {
	rooms      map[string]map[*Client]struct{} // tableID -> clients
	register   chan *Client
	unregister chan *Client
	closeRoom  chan string
	done       chan struct{}
	upgrader   websocket.Upgrader
	mu         sync.RWMutex
}

// NewHub creates a hub. checkOrigin may be nil to accept any origin.
func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &Hub{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		closeRoom:  make(chan string, 16),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// BroadcastToTable sends a message to every connection at a table.
func (h *Hub) BroadcastToTable(tableID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[tableID] {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] Send buffer full for %s at table %s, dropping message", client.role, tableID)
		}
	}
}

// BroadcastAll sends a message to every connection of every table.
func (h *Hub) BroadcastAll(message interface{}) int {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for tableID, room := range h.rooms {
		for client := range room {
			select {
			case client.send <- data:
				n++
			default:
				log.Printf("[WS] Send buffer full at table %s, dropping broadcast", tableID)
			}
		}
	}
	return n
}

// CloseTable disconnects everyone at a table.
func (h *Hub) CloseTable(tableID string) {
	select {
	case h.closeRoom <- tableID:
	case <-h.done:
	}
}

// RoomSize returns the number of connections at a table.
func (h *Hub) RoomSize(tableID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tableID])
}

// Message is an inbound client message.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error at table %s: %v", c.tableID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error at table %s: %v", c.tableID, err)
				return
			}
		}
	}
}

// reply queues a message for this connection only. It is dropped once
// the hub has let go of the connection.
func (c *Client) reply(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling reply: %v", err)
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.rooms[c.tableID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Reply dropped at table %s (buffer full)", c.tableID)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.reply(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

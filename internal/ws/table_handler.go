package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playpool/pocketball/internal/game"
	"github.com/playpool/pocketball/internal/session"
	"github.com/playpool/pocketball/internal/table"
)

const requestTimeout = 5 * time.Second

// Table is the game a connection drives. *session.Table implements it.
type Table interface {
	SelectMode(ctx context.Context, mode game.Mode, matchLength int) error
	NewMatch(ctx context.Context) error
	Attempt(ctx context.Context, count int) (game.AttemptToken, error)
	CollisionStart(ctx context.Context, pairs []table.Contact) (int, error)
	UpdatePositions(ctx context.Context, positions []table.BodyPosition) error
	RestartRound(ctx context.Context) error
	SaveScore(ctx context.Context, name1, name2 string) error
	State(ctx context.Context) (session.State, error)
}

// Inbound payloads
type SelectModeData struct {
	Mode        game.Mode `json:"mode"`
	MatchLength int       `json:"match_length"`
}

type AttemptData struct {
	Count int `json:"count"`
}

type CollisionStartData struct {
	Pairs []table.Contact `json:"pairs"`
}

type BodyPositionsData struct {
	Bodies []table.BodyPosition `json:"bodies"`
}

type SaveScoreData struct {
	Name1 string `json:"name1"`
	Name2 string `json:"name2"`
}

// ServeTable upgrades the request and attaches the connection to the
// table's room. The caller has already authorized tableID and role.
func (h *Hub) ServeTable(w http.ResponseWriter, r *http.Request, tableID string, t Table, role Role) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		tableID: tableID,
		role:    role,
		table:   t,
		send:    make(chan []byte, sendBuffer),
	}

	// queued before registering so it is the first message on the wire
	if data, err := json.Marshal(client.stateMessage()); err == nil {
		client.send <- data
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Run services registrations until ctx is done, then drops every
// connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	log.Println("[WS] Hub started")

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, room := range h.rooms {
				for client := range room {
					close(client.send)
				}
				delete(h.rooms, id)
			}
			h.mu.Unlock()
			log.Println("[WS] Hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			room, ok := h.rooms[client.tableID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[client.tableID] = room
			}
			room[client] = struct{}{}
			size := len(room)
			h.mu.Unlock()
			log.Printf("[WS] %s connected to table %s (room_size=%d)", client.role, client.tableID, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.tableID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.tableID)
					}
					log.Printf("[WS] %s disconnected from table %s", client.role, client.tableID)
				}
			}
			h.mu.Unlock()

		case tableID := <-h.closeRoom:
			h.mu.Lock()
			room := h.rooms[tableID]
			for client := range room {
				close(client.send)
			}
			delete(h.rooms, tableID)
			h.mu.Unlock()
			if len(room) > 0 {
				log.Printf("[WS] Closed %d connections at table %s", len(room), tableID)
			}
		}
	}
}

// readPump reads messages until the connection fails.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close at table %s: %v", c.tableID, err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}

		c.handleMessage(msg)
	}
}

// handleMessage dispatches one inbound message to the table.
func (c *Client) handleMessage(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if msg.Type == "get_state" {
		c.sendState()
		return
	}
	if c.role != RolePlayer {
		c.sendError("Spectators cannot play")
		return
	}

	var err error
	switch msg.Type {
	case "select_mode":
		var data SelectModeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid mode data")
			return
		}
		err = c.table.SelectMode(ctx, data.Mode, data.MatchLength)

	case "new_match":
		err = c.table.NewMatch(ctx)

	case "attempt":
		data := AttemptData{Count: 1}
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError("Invalid attempt data")
				return
			}
		}
		var tok game.AttemptToken
		tok, err = c.table.Attempt(ctx, data.Count)
		if err == nil {
			c.reply(map[string]interface{}{"type": "attempt_registered", "token": tok, "accepted": tok.Valid()})
		}

	case "collision_start":
		var data CollisionStartData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid collision data")
			return
		}
		_, err = c.table.CollisionStart(ctx, data.Pairs)

	case "body_positions":
		var data BodyPositionsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid position data")
			return
		}
		err = c.table.UpdatePositions(ctx, data.Bodies)

	case "restart_round":
		err = c.table.RestartRound(ctx)

	case "save_score":
		var data SaveScoreData
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &data); err != nil {
				c.sendError("Invalid save data")
				return
			}
		}
		err = c.table.SaveScore(ctx, data.Name1, data.Name2)

	default:
		c.sendError("Unknown message type")
		return
	}

	if err != nil {
		c.sendError(errorMessage(err))
	}
}

func (c *Client) sendState() {
	c.reply(c.stateMessage())
}

func (c *Client) stateMessage() map[string]interface{} {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	st, err := c.table.State(ctx)
	if err != nil {
		return map[string]interface{}{"type": "error", "message": errorMessage(err)}
	}
	return map[string]interface{}{"type": "state", "state": st}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrNoGameMode):
		return "Select a game mode first"
	case errors.Is(err, game.ErrInvalidMatchLength):
		return "Match length must be at least 1"
	case errors.Is(err, game.ErrMatchNotOver):
		return "The match is not over yet"
	case errors.Is(err, game.ErrAlreadySaved):
		return "Scores already saved"
	case errors.Is(err, session.ErrTableClosed):
		return "Table closed"
	}
	return err.Error()
}

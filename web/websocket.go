package web

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"tennis-score-service/logger"
	"tennis-score-service/scoreboard"
	"tennis-score-service/tennisapi"
)

// Client is one connected downstream WebSocket client.
//
// matchIDs is written by the connection's read goroutine and read by the
// hub's broadcast goroutine, so every access goes through mu.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu       sync.Mutex
	matchIDs map[string]bool // match id filter; empty receives everything
}

// Hub fans reconciled match snapshots out to the connected clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *tennisapi.PushMessage
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *tennisapi.PushMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations and broadcasts until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("[Hub] Client registered. Total clients: %d", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Printf("[Hub] Client unregistered. Total clients: %d", total)

		case message := <-h.broadcast:
			data := h.marshalMessage(message)
			h.mu.RLock()
			for client := range h.clients {
				if !client.shouldReceive(message) {
					continue
				}

				select {
				case client.send <- data:
				default:
					h.mu.RUnlock()
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()
					h.mu.RLock()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastMatch pushes one reconciled match snapshot to the clients
// watching it. Implements services.MatchBroadcaster.
func (h *Hub) BroadcastMatch(m scoreboard.Match) {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Errorf("[Hub] Failed to marshal match %s: %v", m.MatchID, err)
		return
	}

	h.broadcast <- &tennisapi.PushMessage{
		Event:   tennisapi.EventMatchUpdated,
		MatchID: m.MatchID,
		Data:    data,
	}
}

func (h *Hub) marshalMessage(message *tennisapi.PushMessage) []byte {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Errorf("[Hub] Failed to marshal message: %v", err)
		return []byte("{}")
	}
	return data
}

// shouldReceive checks the client's match filter.
func (c *Client) shouldReceive(message *tennisapi.PushMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.matchIDs) == 0 {
		return true
	}
	if message.MatchID == "" {
		return false
	}
	return c.matchIDs[message.MatchID]
}

// readPump reads client messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Errorf("[Hub] WebSocket error: %v", err)
			}
			break
		}
		c.handleMessage(message)
	}
}

// writePump forwards broadcast frames to the client.
func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()

	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// handleMessage processes a client frame: joinMatch scopes the client to one
// more match, leaveMatch removes the scope.
func (c *Client) handleMessage(message []byte) {
	var msg tennisapi.PushMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		logger.Errorf("[Hub] Failed to unmarshal client message: %v", err)
		return
	}

	switch msg.Event {
	case tennisapi.EventJoinMatch:
		if msg.MatchID == "" {
			return
		}
		c.mu.Lock()
		if c.matchIDs == nil {
			c.matchIDs = make(map[string]bool)
		}
		c.matchIDs[msg.MatchID] = true
		c.mu.Unlock()
		logger.Printf("[Hub] Client joined match %s", msg.MatchID)

	case "leaveMatch":
		c.mu.Lock()
		delete(c.matchIDs, msg.MatchID)
		c.mu.Unlock()
	}
}

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	clientSendBuffer = 16
	writeWait        = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The REST surface is already wide open via CORS; the feed follows.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsEnvelope struct {
	Action    string      `json:"action,omitempty"`
	Event     *MatchEvent `json:"event,omitempty"`
	MatchID   string      `json:"match_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type wsCommand struct {
	Action  string `json:"action"`
	MatchID string `json:"match_id"`
}

// Client is one websocket subscriber. An empty matchID receives every
// event; otherwise only events for that match.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	mu      sync.Mutex
	matchID string
}

func (c *Client) wants(ev MatchEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchID == "" || c.matchID == ev.MatchID
}

func (c *Client) subscribe(matchID string) {
	c.mu.Lock()
	c.matchID = matchID
	c.mu.Unlock()
}

// Hub fans live events out to websocket subscribers. The done channel is
// closed when the hub loop exits, releasing any pump blocked on
// register/unregister during shutdown.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan MatchEvent
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan MatchEvent, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Debug().Int("clients", len(h.clients)).Msg("websocket client registered")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			log.Debug().Int("clients", len(h.clients)).Msg("websocket client unregistered")

		case ev := <-h.broadcast:
			payload, err := json.Marshal(wsEnvelope{Action: "event", Event: &ev, Timestamp: time.Now()})
			if err != nil {
				log.Error().Err(err).Msg("failed to marshal feed event")
				continue
			}
			for client := range h.clients {
				if !client.wants(ev) {
					continue
				}
				select {
				case client.send <- payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}

		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// Broadcast queues an event for delivery. Non-blocking: if the hub is
// saturated the event is dropped, the REST feed still has it.
func (h *Hub) Broadcast(ev MatchEvent) {
	select {
	case h.broadcast <- ev:
	default:
	}
}

// ServeWS upgrades the connection and starts the read/write pumps. Clients
// may pre-filter with a match_id query parameter or switch later with a
// subscribe message.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, clientSendBuffer),
		matchID: r.URL.Query().Get("match_id"),
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

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd wsCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			continue
		}

		switch cmd.Action {
		case "subscribe":
			c.subscribe(cmd.MatchID)
			c.reply(wsEnvelope{Action: "subscribed", MatchID: cmd.MatchID, Timestamp: time.Now()})
		case "ping":
			c.reply(wsEnvelope{Action: "pong", Timestamp: time.Now()})
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for payload := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) reply(env wsEnvelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

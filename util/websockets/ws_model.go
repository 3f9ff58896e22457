package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe    = "subscribe"
	MsgTypePosterUpdate = "poster_update"
	MsgTypePendingCount = "pending_count"
	MsgTypePlaceSearch  = "place_search"
	MsgTypePlaceResults = "place_results"
)

// Client represents a connected WebSocket user
type Client struct {
	Conn      *websocket.Conn
	ID        string
	Latitude  float64
	Longitude float64

	writeMu sync.Mutex
}

// Send writes a text frame to the client. Safe for concurrent use.
func (c *Client) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, payload)
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.Mutex

	// OnPlaceSearch receives interactive place queries typed by a
	// client; OnDisconnect fires after a client is removed. Both are
	// optional and set before Run starts.
	OnPlaceSearch func(c *Client, query string)
	OnDisconnect  func(c *Client)
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type      string  `json:"type"`
	ID        string  `json:"id,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Query     string  `json:"query,omitempty"`
}

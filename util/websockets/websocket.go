package websockets

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/odezzy/wall_api/util/geo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketManager initializes a WebSocketManager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
	}
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			client, exists := manager.clients[conn]
			if exists {
				delete(manager.clients, conn)
				conn.Close()
				log.Printf("Client %s disconnected", client.ID)
			}
			manager.mu.Unlock()
			if exists && manager.OnDisconnect != nil {
				manager.OnDisconnect(client)
			}

		case message := <-manager.broadcast:
			manager.mu.Lock()
			for _, client := range manager.clients {
				if err := client.Send(message); err != nil {
					client.Conn.Close()
					delete(manager.clients, client.Conn)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// HandleConnections upgrades HTTP requests to WebSocket connections
func (manager *WebSocketManager) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	client := &Client{Conn: conn}
	manager.register <- client

	defer func() {
		manager.unregister <- conn
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var message Message
		if err := json.Unmarshal(msg, &message); err != nil {
			log.Println("Invalid JSON:", err)
			continue
		}

		switch message.Type {
		case MsgTypeSubscribe:
			client.ID = message.ID
			client.Latitude = message.Latitude
			client.Longitude = message.Longitude

		case MsgTypePlaceSearch:
			if manager.OnPlaceSearch != nil {
				manager.OnPlaceSearch(client, message.Query)
			}

		case MsgTypePosterUpdate:
			manager.broadcast <- msg
		}
	}
}

// BroadcastPendingCount pushes the moderation badge count to every
// connected client.
func (manager *WebSocketManager) BroadcastPendingCount(count int) {
	payload, err := json.Marshal(map[string]interface{}{
		"type":  MsgTypePendingCount,
		"count": count,
	})
	if err != nil {
		return
	}
	manager.broadcast <- payload
}

// BroadcastPosterUpdate sends a poster payload only to subscribers
// within radiusKm of the poster.
func (manager *WebSocketManager) BroadcastPosterUpdate(payload []byte, posterLat, posterLon, radiusKm float64) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	poster := geo.Point{Lat: posterLat, Lon: posterLon}
	for _, client := range manager.clients {
		at := geo.Point{Lat: client.Latitude, Lon: client.Longitude}
		if geo.DistanceKm(at, poster) <= radiusKm {
			client.Send(payload)
		}
	}
}

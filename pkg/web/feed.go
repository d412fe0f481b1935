// Package web - live case feed over WebSocket.
package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/CastorStudios/CentinelaGo/pkg/logger"
	"github.com/CastorStudios/CentinelaGo/pkg/models"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// caseFeed keeps the set of connected dashboard clients. New moderation cases
// are pushed to every client as they are created.
type caseFeed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var feed = &caseFeed{clients: make(map[*websocket.Conn]bool)}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El middleware de hosts permitidos ya filtró la petición
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHandler upgrades the connection and subscribes it to the case feed
func FeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error actualizando conexión a WebSocket: %v", err), "WebServer")
		return
	}

	feed.mu.Lock()
	feed.clients[conn] = true
	total := len(feed.clients)
	feed.mu.Unlock()

	logger.Debug(fmt.Sprintf("Cliente conectado al feed de casos (%d en total)", total), "WebServer")

	// Reader loop: we ignore incoming messages, but reading is what detects
	// the close handshake and network drops
	go func() {
		defer feed.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (f *caseFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

// BroadcastCase pushes a newly created case to every connected feed client
func BroadcastCase(cs *models.Case) {
	data, err := json.Marshal(gin.H{
		"type": "case_created",
		"case": cs,
	})
	if err != nil {
		return
	}

	// El lock también serializa las escrituras: gorilla no admite
	// escritores concurrentes sobre la misma conexión
	feed.mu.Lock()
	defer feed.mu.Unlock()
	for conn := range feed.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(feed.clients, conn)
			conn.Close()
		}
	}
}

package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/ChunkHostStudios/ChunkHostGo/pkg/logger"
	"github.com/ChunkHostStudios/ChunkHostGo/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// FeedHub pushes every activity event to the connected websocket clients.
// It implements notify.Sink.
type FeedHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var feedHub = &FeedHub{clients: make(map[*websocket.Conn]bool)}

// Feed returns the process-wide feed hub, for subscribing it to the
// notification hub.
func Feed() *FeedHub {
	return feedHub
}

// Emit broadcasts the event to every connected client. Dead connections are
// dropped on write failure.
func (h *FeedHub) Emit(event models.ActivityEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Count returns the number of connected feed clients.
func (h *FeedHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *FeedHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *FeedHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}

// feedHandler upgrades the request to a websocket and streams activity
// events until the client disconnects.
func feedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn(fmt.Sprintf("Fallo al abrir websocket: %v", err), "WebServer")
			return
		}

		feedHub.add(conn)
		logger.Debug(fmt.Sprintf("Cliente de feed conectado (%d en total)", feedHub.Count()), "WebServer")

		// Drain incoming frames to detect disconnects; the feed is
		// write-only from the server side.
		go func() {
			defer feedHub.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

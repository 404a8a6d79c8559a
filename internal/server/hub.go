package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks the open reload sockets. Every assembled page in watch mode
// connects once; a rebuild broadcast makes them all reload.
type Hub struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewHub creates an empty Hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[string]*websocket.Conn),
	}
}

// Handle upgrades a page's reload socket and parks it until the page closes
// it or a broadcast write fails.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("livereload upgrade failed", zap.Error(err))
		return
	}
	id := uuid.New().String()
	h.add(id, conn)
	defer h.remove(id)
	defer conn.Close()

	// Pages never send anything useful; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends a message to every connected page. Dead connections are
// dropped on the spot.
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			conn.Close()
			delete(h.clients, id)
		}
	}
	h.log.Debug("reload broadcast", zap.Int("clients", len(h.clients)), zap.String("message", message))
}

// ClientCount reports the number of connected pages.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) add(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = conn
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

package events

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event es el mensaje que se empuja a las UIs conectadas
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Hub mantiene las conexiones WebSocket de las estaciones y les empuja
// eventos de invalidación y de ciclo de vida de traspasos. Una conexión
// que falla al escribir se cierra y se descarta en el momento.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]struct{}
	logger *zap.Logger
}

// NewHub crea un hub vacío
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

// Register agrega una conexión al hub
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	h.logger.Info("Estación conectada al hub de eventos", zap.Int("connections", len(h.conns)))
}

// Unregister saca una conexión del hub
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		h.logger.Info("Estación desconectada del hub de eventos", zap.Int("connections", len(h.conns)))
	}
}

// Broadcast envía un evento a todas las conexiones vivas
func (h *Hub) Broadcast(eventType string, payload interface{}) {
	event := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn("Error enviando evento por WebSocket, descartando conexión", zap.Error(err))
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Count retorna la cantidad de estaciones conectadas
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

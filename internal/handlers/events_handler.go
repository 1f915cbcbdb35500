package handlers

import (
	"net/http"
	"time"

	"inventory-gateway/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// upgrader configuración para WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Las estaciones corren en la red local
	},
}

// EventsHandler expone el stream WebSocket de eventos para las estaciones
type EventsHandler struct {
	hub    *events.Hub
	logger *zap.Logger
}

// NewEventsHandler crea una nueva instancia del handler
func NewEventsHandler(hub *events.Hub, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		logger: logger,
	}
}

// Stream actualiza la conexión a WebSocket y la deja registrada en el hub
// hasta que el cliente se desconecte
func (h *EventsHandler) Stream(c *gin.Context) {
	logger := h.logger.With(zap.String("handler", "events_stream"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error actualizando a WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// El cliente no manda mensajes de aplicación; el loop de lectura solo
	// detecta el cierre de la conexión
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

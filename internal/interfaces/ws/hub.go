// Package ws difunde por websocket los cambios de stock confirmados.
package ws

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-api/internal/application/ports"
)

var _ ports.StockEventPublisher = (*Hub)(nil)

// Client lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Message sobre enviado a los clientes.
type Message struct {
	Type  string            `json:"type"`
	Event ports.StockChange `json:"event"`
}

const broadcastBuffer = 256

// Hub registro de clientes y fan-out. Solo la goroutine de Run toca clients.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, broadcastBuffer),
		log:        log.With().Str("component", "ws").Logger(),
	}
}

// Run atiende registros y difusiones hasta que ctx se cancela; al salir cierra todos los clientes.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug().Int("clients", len(h.clients)).Msg("cliente ws conectado")

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
		}
	}
}

func (h *Hub) Register(c Client)   { h.register <- c }
func (h *Hub) Unregister(c Client) { h.unregister <- c }

// PublishStockChange nunca bloquea: con el buffer lleno el evento se descarta.
func (h *Hub) PublishStockChange(ev ports.StockChange) {
	msg, err := json.Marshal(Message{Type: "stock_update", Event: ev})
	if err != nil {
		h.log.Warn().Err(err).Msg("no se pudo serializar evento de stock")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn().Str("item_id", ev.ItemID).Msg("buffer ws lleno, evento descartado")
	}
}

// Upgrade rechaza con 426 las peticiones que no piden websocket.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler mantiene la conexión registrada hasta que el cliente la cierra.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		h.Register(conn)
		defer h.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

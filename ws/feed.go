package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/d-syoyu/beauty-salon-web-sub001/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Feed event types.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

type FeedEvent struct {
	Type        string              `json:"type"`
	Reservation *entity.Reservation `json:"reservation"`
}

// FeedHub pushes reservation events to connected back-office clients.
type FeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan FeedEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan FeedEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ReservationCreated implements services.ReservationNotifier.
func (h *FeedHub) ReservationCreated(res *entity.Reservation) {
	h.broadcast <- FeedEvent{Type: EventReservationCreated, Reservation: res}
}

func (h *FeedHub) ReservationCancelled(res *entity.Reservation) {
	h.broadcast <- FeedEvent{Type: EventReservationCancelled, Reservation: res}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the auth middleware in front of the route.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades an admin connection and keeps it registered until the
// client goes away. The feed is write-only; reads only detect close.
func (h *FeedHub) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("ws upgrade failed: %v", err)
			return
		}
		h.register <- conn

		go func() {
			defer func() { h.unregister <- conn }()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

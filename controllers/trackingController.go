package controllers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"go-food-marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// TrackingHub pushes committed order status changes to connected clients so
// customers and kitchens can watch an order move without polling.
type TrackingHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

type trackingMessage struct {
	Order_id   string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Updated_at time.Time          `json:"updated_at"`
}

// NotifyStatusChange implements services.StatusNotifier.
func (h *TrackingHub) NotifyStatusChange(orderID string, status models.OrderStatus) {
	message := trackingMessage{
		Order_id:   orderID,
		Status:     status,
		Updated_at: time.Now().UTC(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteJSON(message); err != nil {
			log.Printf("error occurred while sending tracking update: %v", err)
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *TrackingHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *TrackingHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
}

var orderTracker = &TrackingHub{clients: make(map[*websocket.Conn]bool)}

func HandleOrderTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("error occurred while upgrading connection: %v", err)
			return
		}
		orderTracker.register(conn)

		// Drain reads until the peer goes away.
		go func() {
			defer orderTracker.unregister(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

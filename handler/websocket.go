package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"trendkart/database"
	"trendkart/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	// One room per order; every connected tracker gets the same updates.
	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// OrderStatusUpdate is the payload pushed to order trackers.
type OrderStatusUpdate struct {
	OrderID     uint              `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	Status      model.OrderStatus `json:"status"`
	At          time.Time         `json:"at"`
}

// OrderTrackingSocket streams status updates for one order over a websocket.
func OrderTrackingSocket(c *websocket.Conn) {
	orderIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(orderIdStr, 10, 64)
	orderId := uint(id64)

	defer func() {
		mu.Lock()
		if clients[orderId] != nil {
			delete(clients[orderId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[orderId] == nil {
		clients[orderId] = make(map[*websocket.Conn]bool)
	}
	clients[orderId][c] = true
	mu.Unlock()

	// Current state first, then the live feed.
	var order model.Order
	if err := database.DB.First(&order, orderId).Error; err == nil {
		c.WriteJSON(OrderStatusUpdate{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			At:          order.UpdatedAt,
		})
	}

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("order:%d", orderId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[orderId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[orderId], conn)
			}
		}
		mu.Unlock()
	}
}

// PublishOrderUpdate fans an order status change out to connected trackers.
// A publish failure never fails the request that caused it.
func PublishOrderUpdate(order *model.Order) {
	update := OrderStatusUpdate{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		At:          time.Now().UTC(),
	}
	payload, err := json.Marshal(update)
	if err != nil {
		return
	}
	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("order:%d", order.ID),
		payload,
	).Err(); err != nil {
		log.Printf("order update publish failed for order %d: %v", order.ID, err)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"log"
	"restaurant_manager/config"
	"restaurant_manager/constants"
	"restaurant_manager/lifecycle"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

// Every connected client gets every event; the frontends filter by type.
// Events travel through Redis pub/sub so multiple instances stay in sync.
const eventChannel = "restaurant:events"

var (
	redisClient *redis.Client
	redisOnce   sync.Once

	clients = make(map[*websocket.Conn]bool)
	mu      sync.Mutex
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		addr := config.Config("REDIS_ADDR")
		if addr == "" {
			addr = "localhost:6379"
		}
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
	})
	return redisClient
}

type wsBroadcaster struct{}

// Notify publishes the event after the engine's transaction has committed.
// Delivery is best effort: a Redis outage degrades to instance-local fan-out.
func (wsBroadcaster) Notify(topic string, payload any) {
	raw, err := json.Marshal(Event{Type: topic, Payload: payload})
	if err != nil {
		log.Printf("event marshal failed for %s: %v", topic, err)
		return
	}

	go func() {
		err := getRedisClient().Publish(context.Background(), eventChannel, raw).Err()
		if err != nil {
			broadcastLocal(raw)
		}
	}()
}

func EventBroadcaster() lifecycle.Broadcaster {
	return wsBroadcaster{}
}

// StartEventHub subscribes to the Redis event channel and fans messages out
// to the websocket clients of this instance.
func StartEventHub() {
	go func() {
		pubsub := getRedisClient().Subscribe(context.Background(), eventChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			broadcastLocal([]byte(msg.Payload))
		}
	}()
}

func broadcastLocal(payload []byte) {
	mu.Lock()
	for conn := range clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(clients, conn)
		}
	}
	mu.Unlock()
}

// WebSocketConnection registers a client and listens for the few messages
// clients send upstream (currently only call_waiter from the QR menu).
func WebSocketConnection(c *websocket.Conn) {
	defer func() {
		mu.Lock()
		delete(clients, c)
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	clients[c] = true
	mu.Unlock()

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		if out, ok := inboundEvent(raw); ok {
			EventBroadcaster().Notify(out.Type, out.Payload)
		}
	}
}

// inboundEvent maps a client message to the event to rebroadcast. Guests send
// call_waiter with their table id; everyone connected gets waiter_called back.
func inboundEvent(raw []byte) (Event, bool) {
	var incoming Event
	if err := json.Unmarshal(raw, &incoming); err != nil {
		return Event{}, false
	}
	if incoming.Type != constants.EVENT_CALL_WAITER {
		return Event{}, false
	}
	return Event{Type: constants.EVENT_WAITER_CALLED, Payload: incoming.Payload}, true
}

package stream

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const invalidationChannel = "cache:invalidations"

// Event tells subscribed views which cache keys went stale so they can
// refetch.
type Event struct {
	Keys []string `json:"keys"`
}

// Hub fans invalidation events out to connected websocket clients.
// With Redis configured, events travel through a pub/sub channel so
// every instance delivers them; without it the fan-out is local only.
type Hub struct {
	redis   *redis.Client
	clients map[*Client]struct{}
	mu      sync.RWMutex
	log     zerolog.Logger
}

type Client struct {
	Send chan []byte
}

func NewHub(redisClient *redis.Client, log zerolog.Logger) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[*Client]struct{}{},
		log:     log,
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{
		Send: make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// Broadcast publishes the invalidated keys. When Redis carries the
// event the local delivery happens through the subscription, so the
// event is never delivered twice.
func (h *Hub) Broadcast(keys []string) {
	if len(keys) == 0 {
		return
	}

	payload, err := json.Marshal(Event{Keys: keys})
	if err != nil {
		h.log.Warn().Err(err).Msg("marshal invalidation event")
		return
	}

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), invalidationChannel, payload).Err()
		if err == nil {
			return
		}
		h.log.Warn().Err(err).Msg("redis publish failed, delivering locally")
	}
	h.deliver(payload)
}

func (h *Hub) deliver(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), invalidationChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver([]byte(msg.Payload))
	}
}

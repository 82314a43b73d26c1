package realtime

import (
	"encoding/json"
	"sync"
)

// Client represents a single websocket client connection.
// The network connection itself is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is the only payload ever published: what happened, to which id.
type Event struct {
	Event string `json:"event"`
	ID    uint   `json:"id"`
}

// Hub maintains active subscriptions and fans events out to them.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[Client]struct{})}
}

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = NewHub()
	})
	return hubInstance
}

// Register subscribes client to channel.
func (h *Hub) Register(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[Client]struct{})
	}
	h.channels[channel][client] = struct{}{}
}

// Unregister removes a client; empty channels are dropped.
func (h *Hub) Unregister(channel string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Drop unsubscribes and closes the clients of channel selected by match.
// An empty channel searches every channel; a nil match selects all clients.
func (h *Hub) Drop(channel string, match func(Client) bool) int {
	var dropped []Client
	h.mu.Lock()
	for name, clients := range h.channels {
		if channel != "" && name != channel {
			continue
		}
		for c := range clients {
			if match == nil || match(c) {
				delete(clients, c)
				dropped = append(dropped, c)
			}
		}
		if len(clients) == 0 {
			delete(h.channels, name)
		}
	}
	h.mu.Unlock()

	for _, c := range dropped {
		c.Close()
	}
	return len(dropped)
}

// Subscribers returns how many clients listen on channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

// Broadcast sends a raw message to all clients of a channel and returns how
// many accepted it. Failed clients are cleaned up by their handler.
func (h *Hub) Broadcast(channel string, message []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.channels[channel] {
		if c.Send(message) {
			sent++
		}
	}
	return sent
}

// Publish encodes evt and broadcasts it on channel.
func (h *Hub) Publish(channel string, evt Event) int {
	msg, err := json.Marshal(evt)
	if err != nil {
		return 0
	}
	return h.Broadcast(channel, msg)
}

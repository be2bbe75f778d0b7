package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// broadcast pairs an encoded message with the city topic it belongs to. An
// empty topic reaches every client.
type broadcast struct {
	topic string
	data  []byte
}

// Hub maintains the set of active clients and fans listing activity out to
// them. Clients may subscribe to a single city; clients without a city
// receive everything.
type Hub struct {
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	broadcasts chan broadcast
}

// NewHub creates a new Hub. The broadcast channel is buffered so request
// handlers never block on a slow feed.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcasts: make(chan broadcast, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Str("city", client.City).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case b := <-h.broadcasts:
			for client := range h.clients {
				if client.City != "" && b.topic != "" && client.City != b.topic {
					continue
				}
				select {
				case client.Send <- b.data:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish encodes the message and queues it for the city topic. If the feed
// is saturated the message is dropped rather than stalling the caller.
func (h *Hub) Publish(city string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("action", msg.Action).Msg("Failed to encode feed message")
		return
	}
	select {
	case h.broadcasts <- broadcast{topic: city, data: data}:
	default:
		log.Warn().Str("action", msg.Action).Msg("Feed saturated, dropping message")
	}
}

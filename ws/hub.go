package ws

// The hub gives independent views a broadcast channel pair: every view
// subscribes to a named channel and receives what the others post on it.
// A sender never receives its own message and delivery is fire-and-forget;
// a missed message costs a stale view, never data loss.

import (
	"log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one subscriber on one channel. Conn is nil for in-process
// subscribers, which consume Send directly.
type Client struct {
	ID    uuid.UUID
	Topic string
	Conn  *websocket.Conn
	Send  chan []byte
}

// BroadcastMessage is posted by one client and delivered to every other
// client on the same topic.
type BroadcastMessage struct {
	Topic  string
	Sender uuid.UUID
	Data   []byte
}

// Hub manages all subscribed clients.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan BroadcastMessage
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan BroadcastMessage),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Subscribe registers a new client on the given channel and returns it. The
// hub's Run loop must be active.
func (h *Hub) Subscribe(topic string) *Client {
	client := &Client{ID: uuid.New(), Topic: topic, Send: make(chan []byte, 256)}
	h.Register <- client
	return client
}

// Unsubscribe removes the client and closes its Send channel.
func (h *Hub) Unsubscribe(client *Client) {
	h.Unregister <- client
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Printf("ws: client subscribed topic=%s", client.Topic)
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Printf("ws: client unsubscribed topic=%s", client.Topic)
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				if client.Topic != message.Topic || client.ID == message.Sender {
					continue
				}
				select {
				case client.Send <- message.Data:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and routes activity events to the
// connections belonging to each user.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of user IDs to the set of that user's live connections.
	byUser map[string]map[*Client]bool

	// Targeted deliveries: an event payload bound for one user's connections.
	deliveries chan delivery
}

type delivery struct {
	userID  string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		byUser:     make(map[string]map[*Client]bool),
		deliveries: make(chan delivery, 64),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if h.byUser[client.UserID] == nil {
				h.byUser[client.UserID] = make(map[*Client]bool)
			}
			h.byUser[client.UserID][client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Activity feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Activity feed client disconnected")
			}
		case d := <-h.deliveries:
			for client := range h.byUser[d.userID] {
				select {
				case client.Send <- d.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all connections held by a specific user.
// Other users' connections never see it.
func (h *Hub) BroadcastTo(userID string, message []byte) {
	h.deliveries <- delivery{userID: userID, message: message}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.Send)
	if conns, ok := h.byUser[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.byUser, client.UserID)
		}
	}
}

package websocket

// Message defines the envelope for frames pushed to activity feed clients.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

package ws

import (
	"encoding/json"
	"sync"

	"lessonquiz/internal/logger"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans lesson events out to the admin connections watching each lesson
type Hub struct {
	// lessonID -> connections
	lessons map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	log logger.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	LessonID string
	AdminID  string
	Send     chan []byte
}

// NewConnection creates a connection with a buffered send queue.
func NewConnection(lessonID, adminID string) *Connection {
	return &Connection{
		LessonID: lessonID,
		AdminID:  adminID,
		Send:     make(chan []byte, 256),
	}
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	LessonID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub(log logger.Logger) *Hub {
	h := &Hub{
		lessons:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		log:        log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.lessons[conn.LessonID] == nil {
				h.lessons[conn.LessonID] = make(map[*Connection]bool)
			}
			h.lessons[conn.LessonID][conn] = true
			h.mu.Unlock()
			h.log.Info("[WS] admin watching lesson", conn.AdminID, conn.LessonID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.lessons[conn.LessonID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.lessons, conn.LessonID)
				}
				h.log.Info("[WS] admin left lesson", conn.AdminID, conn.LessonID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.log.Error("[WS] encode message", err)
				continue
			}
			h.mu.RLock()
			for conn := range h.lessons[msg.LessonID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// Watchers returns the number of connections on a lesson.
func (h *Hub) Watchers(lessonID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.lessons[lessonID])
}

// BroadcastToLesson queues a message for every watcher of the lesson
// (implements service.Broadcaster). It never blocks the caller.
func (h *Hub) BroadcastToLesson(lessonID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("[WS] encode payload", err)
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{
		LessonID: lessonID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}:
	default:
		h.log.Warn("[WS] broadcast queue full, message dropped", lessonID, msgType)
	}
}

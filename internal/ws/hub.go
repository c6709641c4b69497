package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/goroutine"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// EventAuthState событие изменения состояния аутентификации.
const EventAuthState = "auth_state"

// Hub управляет WebSocket клиентами админки.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	stopOnce   sync.Once
}

// message адресат uuid.Nil означает рассылку всем клиентам.
type message struct {
	userID  uuid.UUID
	payload []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба. Завершается по отмене контекста и закрывает всех клиентов.
func (h *Hub) Run(ctx context.Context) {
	defer h.stop()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg)
		}
	}
}

// Register добавляет клиента. После остановки хаба клиент сразу закрывается.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastToUser отправляет событие всем подключениям пользователя.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	raw, err := encode(event, data)
	if err != nil {
		return err
	}
	h.enqueue(message{userID: userID, payload: raw})
	return nil
}

// BroadcastAll отправляет событие всем подключённым администраторам.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	raw, err := encode(event, data)
	if err != nil {
		logger.Component("ws").WithError(err).WithField("event", event).Error("не удалось отправить событие")
		return
	}
	h.enqueue(message{payload: raw})
}

// HandleAuthEvent передаёт изменения сессии в сокеты пользователя.
// Подписывается на SessionManager через Subscribe.
func (h *Hub) HandleAuthEvent(event service.AuthEvent) {
	if event.Type != models.AuthEventSignedOut {
		return
	}
	if err := h.BroadcastToUser(event.UserID, EventAuthState, event); err != nil {
		logger.Component("ws").WithError(err).Error("не удалось отправить auth_state")
	}
}

// Connected возвращает число подключений пользователя.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) enqueue(msg message) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func encode(event string, data any) ([]byte, error) {
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return nil, fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}
	return raw, nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, registered := clients[client]; registered {
			delete(clients, client)
			client.closeSend()
		}
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(msg message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	deliver := func(client *Client) {
		select {
		case client.send <- msg.payload:
		default:
			// медленный клиент отключается
			goroutine.SafeGo(client.Close)
		}
	}

	if msg.userID != uuid.Nil {
		for client := range h.clients[msg.userID] {
			deliver(client)
		}
		return
	}
	for _, clients := range h.clients {
		for client := range clients {
			deliver(client)
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()
		for userID, clients := range h.clients {
			for client := range clients {
				client.closeSend()
			}
			delete(h.clients, userID)
		}
	})
}

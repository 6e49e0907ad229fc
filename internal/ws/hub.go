package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ecommerce-admin/internal/model"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	broadcastBuffer = 64
	// writeWait bounds every write so one stalled client cannot hold up the others.
	writeWait = 5 * time.Second
	// closeGrace is how long a client gets to answer the close frame on shutdown.
	closeGrace = 2 * time.Second
)

// Hub fans committed stock events out to every connected WebSocket client.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	done       chan struct{}
	handlers   sync.WaitGroup
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is cancelled. Run must be
// called at most once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logger.Debug("ws client connected", zap.Int("clients", h.ClientCount()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.broadcast(message)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until every connection handler has returned.
func (h *Hub) Wait() {
	h.handlers.Wait()
}

func (h *Hub) broadcast(message []byte) {
	h.mutex.Lock()
	conns := make([]*websocket.Conn, 0, len(h.Clients))
	for conn := range h.Clients {
		conns = append(conns, conn)
	}
	h.mutex.Unlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.Debug("dropping ws client", zap.Error(err))
			failed = append(failed, conn)
		}
	}
	if len(failed) == 0 {
		return
	}

	h.mutex.Lock()
	for _, conn := range failed {
		delete(h.Clients, conn)
		conn.Close()
	}
	h.mutex.Unlock()
}

// Publish queues event for broadcast. It never blocks the caller: when the
// buffer is full the event is dropped and an error is returned.
func (h *Hub) Publish(_ context.Context, event model.StockEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock event: %w", err)
	}

	select {
	case h.Broadcast <- msg:
		return nil
	default:
		return fmt.Errorf("ws broadcast buffer full, dropped %s event", event.Type)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// closeAll sends every client a close frame. The client's reply ends the
// handler's read loop; the read deadline ends it for clients that never reply.
func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.Clients {
		sendClose(conn)
		conn.SetReadDeadline(time.Now().Add(closeGrace))
		delete(h.Clients, conn)
	}
}

func sendClose(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

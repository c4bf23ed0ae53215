package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// clientBuffer is how many messages may queue for one client before it
	// is dropped as too slow.
	clientBuffer = 16
)

// Handler answers one client command. A nil reply sends nothing.
type Handler func(ctx context.Context, cmd *Message) (*Message, error)

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan *Message
}

// Hub owns the connected clients. Run routes messages into each client's
// queue; every client has its own writer goroutine.
type Hub struct {
	handlers map[string]Handler
	upgrader websocket.Upgrader
	logger   *slog.Logger

	registerCh   chan *client
	deregisterCh chan *client
	sendCh       chan *Message
	done         chan struct{}
	count        atomic.Int64
}

// NewHub creates a hub with the built-in ping and test_event commands.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		handlers: make(map[string]Handler),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:       logger.With("component", "ws"),
		registerCh:   make(chan *client),
		deregisterCh: make(chan *client),
		sendCh:       make(chan *Message, 64),
		done:         make(chan struct{}),
	}
	h.Bind(CmdPing, handlePing)
	h.Bind(CmdTestEvent, handleTestEvent)
	return h
}

// Bind registers handler for the named command.
func (h *Hub) Bind(command string, handler Handler) *Hub {
	h.handlers[command] = handler
	return h
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Run services registrations and outbound messages until ctx is done, then
// closes every client.
func (h *Hub) Run(ctx context.Context) error {
	clients := make(map[uuid.UUID]*client)
	defer func() {
		close(h.done)
		for _, c := range clients {
			h.drop(c)
		}
		h.count.Store(0)
		h.logger.Info("websocket hub stopped")
	}()

	for {
		select {
		case c := <-h.registerCh:
			clients[c.id] = c
			h.count.Store(int64(len(clients)))
			h.logger.Debug("client connected", "client", c.id)
		case c := <-h.deregisterCh:
			if _, ok := clients[c.id]; ok {
				delete(clients, c.id)
				h.drop(c)
				h.count.Store(int64(len(clients)))
				h.logger.Debug("client disconnected", "client", c.id)
			}
		case msg := <-h.sendCh:
			if msg.target != nil {
				if c, ok := clients[*msg.target]; ok {
					h.enqueue(clients, c, msg)
				}
				continue
			}
			for _, c := range clients {
				h.enqueue(clients, c, msg)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// enqueue hands msg to c's writer. A client whose queue is full is
// disconnected. Only Run calls it.
func (h *Hub) enqueue(clients map[uuid.UUID]*client, c *client, msg *Message) {
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("client too slow, disconnecting", "client", c.id, "event", msg.Event)
		delete(clients, c.id)
		h.drop(c)
		h.count.Store(int64(len(clients)))
	}
}

// drop closes c's queue and connection. Only Run calls it, once per client.
func (h *Hub) drop(c *client) {
	close(c.send)
	_ = c.conn.Close()
}

// writePump writes queued messages to c until its queue is closed.
func (h *Hub) writePump(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			h.logger.Warn("write failed", "client", c.id, "event", msg.Event, "error", err)
		}
	}
}

// Broadcast queues msg for every client. It is dropped once the hub stops.
func (h *Hub) Broadcast(event string, data map[string]any) {
	h.send(&Message{Event: event, Data: data})
}

func (h *Hub) send(msg *Message) {
	select {
	case h.sendCh <- msg:
	case <-h.done:
	}
}

// ServeHTTP upgrades the request and reads commands until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	c := &client{id: uuid.New(), conn: conn, send: make(chan *Message, clientBuffer)}
	select {
	case h.registerCh <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go h.writePump(c)
	defer func() {
		select {
		case h.deregisterCh <- c:
		case <-h.done:
		}
	}()

	h.send(&Message{
		Event:  MsgConnectionStatus,
		Data:   map[string]any{"status": "connected", "client": c.id.String(), "timestamp": time.Now().UnixMilli()},
		target: &c.id,
	})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("client read failed", "client", c.id, "error", err)
			}
			return
		}
		msg.origin = &c.id
		h.handle(r.Context(), &msg)
	}
}

func (h *Hub) handle(ctx context.Context, cmd *Message) {
	handler, ok := h.handlers[cmd.Event]
	if !ok {
		h.logger.Debug("unknown command", "command", cmd.Event)
		h.send(cmd.Reply(MsgCommandFailure, map[string]any{"command": cmd.Event, "error": "unknown command"}))
		return
	}

	reply, err := handler(ctx, cmd)
	if err != nil {
		h.logger.Debug("command failed", "command", cmd.Event, "error", err)
		h.send(cmd.Reply(MsgCommandFailure, map[string]any{"command": cmd.Event, "error": err.Error()}))
		return
	}
	if reply != nil {
		h.send(reply)
	}
}

// Package stream broadcasts simulation frames to websocket clients and applies their input
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/forcegraph/core"
	"github.com/lixenwraith/forcegraph/sim"
	"github.com/lixenwraith/forcegraph/status"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// clientBuffer is the number of frames queued per client before frames are skipped
	clientBuffer = 16
)

// Scene is the simulation surface remote clients may drive
type Scene interface {
	sim.PointerSink
	sim.VisualLossReporter
}

// Hub fans frames out to connected clients
// Render never blocks the tick: frames are dropped for clients that fall behind
type Hub struct {
	scene  Scene
	logger *slog.Logger

	mu       sync.RWMutex
	clients  map[*client]bool
	upgrader websocket.Upgrader

	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup

	statSkipped *atomic.Int64
	statClients *atomic.Int64
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// NewHub creates a hub and starts its broadcaster goroutine
// Skipped frames and the client count are published to reg; nil uses a private registry
func NewHub(scene Scene, reg *status.Registry, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	h := &Hub{
		scene:       scene,
		logger:      logger,
		clients:     make(map[*client]bool),
		broadcast:   make(chan []byte, 64),
		register:    make(chan *client),
		unregister:  make(chan *client),
		done:        make(chan struct{}),
		statSkipped: reg.Ints.Get(status.StreamSkipped),
		statClients: reg.Ints.Get(status.StreamClients),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	h.wg.Add(1)
	go h.run()
	return h
}

// Render encodes the frame and queues it for every client
func (h *Hub) Render(frame core.Frame) {
	data, err := json.Marshal(NewFrameMessage(frame))
	if err != nil {
		h.logger.Error("frame encode failed", "frame", frame.Number, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.statSkipped.Add(1)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and attaches the connection as a client
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{hub: h, conn: conn, remote: r.RemoteAddr, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Close disconnects every client and stops the broadcaster
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
	return nil
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.statClients.Store(0)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.statClients.Store(int64(n))
			h.logger.Debug("stream client connected", "remote", c.remote)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.statClients.Store(int64(n))
			h.logger.Debug("stream client disconnected", "remote", c.remote)

		case data := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					h.statSkipped.Add(1)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// writePump owns all writes to the connection
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump applies client messages until the connection fails
func (c *client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("stream client read failed", "error", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.logger.Debug("stream client sent malformed message", "error", err)
			continue
		}
		if err := c.hub.apply(msg); err != nil {
			c.hub.logger.Debug("stream client message rejected", "op", msg.Op, "error", err)
		}
	}
}

// Package hub pushes display frames to connected renderers over websockets.
package hub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/saturday-stats/internal/logging"
	"github.com/preston-bernstein/saturday-stats/internal/metrics"
)

// Hub fans each broadcast out to every client. New clients immediately
// receive the most recent broadcast.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*client
	last     []byte
	closed   bool
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// New builds a hub accepting upgrades from origins ("*" allows any).
func New(origins []string, logger *slog.Logger, recorder *metrics.Recorder) *Hub {
	h := &Hub{
		clients: make(map[string]*client),
		logger:  logger,
		metrics: recorder,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

// ServeHTTP upgrades the request and registers the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		logging.Warn(logging.FromContext(r.Context(), h.logger), "websocket upgrade failed", "error", err)
		return
	}

	c := newClient(uuid.NewString(), conn)
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump(h)
}

// Broadcast encodes v once and queues it for every client. Clients whose
// buffer is full are disconnected.
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		logging.Error(h.logger, "encode broadcast failed", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.last = msg
	for id, c := range h.clients {
		if !c.trySend(msg) {
			logging.Warn(h.logger, "dropping slow renderer", logging.FieldClient, id)
			h.removeLocked(c)
		}
	}
}

// Clients reports the number of connected renderers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.id] = c
	if h.last != nil {
		c.trySend(h.last)
	}
	h.metrics.RecordHubClients(1)
	logging.Info(h.logger, "renderer connected", logging.FieldClient, c.id, logging.FieldCount, len(h.clients))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

// removeLocked drops c and closes its send channel exactly once.
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.metrics.RecordHubClients(-1)
	logging.Info(h.logger, "renderer disconnected",
		logging.FieldClient, c.id,
		logging.FieldCount, len(h.clients),
		"connectedFor", time.Since(c.connectedAt).Round(time.Millisecond).String(),
	)
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.TrimSuffix(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadPath is the websocket endpoint browsers connect to.
const ReloadPath = "/_shwimple/reload"

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type  ReloadMessageType `json:"type"`
	Error string            `json:"error,omitempty"`
}

// HubOption configures a ReloadHub.
type HubOption func(*ReloadHub)

// WithHubLogger sets the hub logger.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *ReloadHub) {
		h.logger = logger
	}
}

// WithClientHooks registers callbacks run when a browser connects or
// disconnects. Either may be nil.
func WithClientHooks(connected, disconnected func()) HubOption {
	return func(h *ReloadHub) {
		h.onConnect = connected
		h.onDisconnect = disconnected
	}
}

// ReloadHub manages WebSocket connections for live reload.
type ReloadHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	onConnect    func()
	onDisconnect func()
}

// NewReloadHub creates a new reload hub.
func NewReloadHub(opts ...HubOption) *ReloadHub {
	h := &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview server only
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away.
func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("reload upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	if h.onConnect != nil {
		h.onConnect()
	}
	h.logger.Debug("reload client connected", "remote", req.RemoteAddr)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// NotifyReload sends a full page reload message to all clients.
func (h *ReloadHub) NotifyReload() {
	h.broadcast(ReloadMessage{Type: ReloadTypeFull})
}

// NotifyError sends an error message to all clients.
func (h *ReloadHub) NotifyError(errMsg string) {
	h.broadcast(ReloadMessage{Type: ReloadTypeError, Error: errMsg})
}

// ClearError clears the error overlay on all clients.
func (h *ReloadHub) ClearError() {
	h.broadcast(ReloadMessage{Type: ReloadTypeClear})
}

// broadcast sends a message to all connected clients.
func (h *ReloadHub) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	// gorilla/websocket allows one concurrent writer per connection.
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(client)
		}
	}
}

// remove drops a client once and closes its connection.
func (h *ReloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	conn.Close()
	if ok && h.onDisconnect != nil {
		h.onDisconnect()
	}
}

// ClientCount returns the number of connected clients.
func (h *ReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *ReloadHub) Close() {
	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.remove(client)
	}
}

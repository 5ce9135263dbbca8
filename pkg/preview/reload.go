package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypePage    ReloadMessageType = "reload"
	ReloadTypeRemoved ReloadMessageType = "removed"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type ReloadMessageType `json:"type"`
	Page string            `json:"page,omitempty"`
}

const writeTimeout = 5 * time.Second

// ReloadHub manages WebSocket connections for live reload.
type ReloadHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	upgrader websocket.Upgrader

	// onChange is called with the client count after every change.
	onChange func(n int)
}

// NewReloadHub creates a new reload hub.
func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Preview is a local tool
			},
		},
	}
}

// ServeHTTP upgrades the request and holds the connection until the client
// disconnects.
func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	n := len(h.clients)
	h.mu.Unlock()
	h.changed(n)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// NotifyPage tells every client that page was republished.
func (h *ReloadHub) NotifyPage(page string) int {
	return h.broadcast(ReloadMessage{Type: ReloadTypePage, Page: page})
}

// NotifyRemoved tells every client that page no longer exists.
func (h *ReloadHub) NotifyRemoved(page string) int {
	return h.broadcast(ReloadMessage{Type: ReloadTypeRemoved, Page: page})
}

// broadcast sends a message to all connected clients and returns how many
// received it.
func (h *ReloadHub) broadcast(msg ReloadMessage) int {
	data, err := json.Marshal(msg)
	if err != nil {
		return 0
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	// gorilla connections allow one concurrent writer.
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	sent := 0
	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(client)
			continue
		}
		sent++
	}
	return sent
}

func (h *ReloadHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	n := len(h.clients)
	h.mu.Unlock()

	if ok {
		conn.Close()
		h.changed(n)
	}
}

func (h *ReloadHub) changed(n int) {
	if h.onChange != nil {
		h.onChange(n)
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
	h.mu.Lock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
	h.mu.Unlock()
	h.changed(0)
}

// ReloadScript reconnects to /ws and reloads the page when it is
// republished. It is appended to served pages when reload is enabled.
const ReloadScript = `<script>
(function() {
    var page = document.currentScript.dataset.page;
    var delay = 1000;
    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');
        ws.onopen = function() { delay = 1000; };
        ws.onmessage = function(e) {
            var msg;
            try { msg = JSON.parse(e.data); } catch (err) { return; }
            if (msg.page !== page) { return; }
            if (msg.type === 'reload') { location.reload(); }
            if (msg.type === 'removed') { location.href = '/'; }
        };
        ws.onclose = function() {
            setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
        };
    }
    connect();
})();
</script>`

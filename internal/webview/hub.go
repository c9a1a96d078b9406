// Package webview mirrors the overlay's two display regions to browsers over
// a websocket, for streaming layouts or a second monitor.
package webview

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ConserveLee/barricade-timer/internal/display"
	"github.com/ConserveLee/barricade-timer/internal/logger"
)

const (
	clientBuffer = 32
	writeWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Read-only mirror, any page may subscribe
	},
}

// Message is one region update as sent to clients.
type Message struct {
	Region  display.Region `json:"region"`
	Content string         `json:"content"`
	Style   string         `json:"style"`
}

type client struct {
	conn *websocket.Conn
	send chan Message
}

// Hub is a display.Display that fans updates out to connected clients.
// Display calls never block: a client that falls behind is disconnected.
type Hub struct {
	log logger.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	timer   Message
	status  Message
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*client]struct{}),
		timer:   Message{Region: display.RegionTimer, Style: display.StyleReady.String()},
		status:  Message{Region: display.RegionStatus, Style: display.StyleStatus.String()},
	}
}

var _ display.Display = (*Hub)(nil)

func (h *Hub) SetTimerText(content string, style display.Style) {
	h.publish(Message{Region: display.RegionTimer, Content: content, Style: style.String()})
}

func (h *Hub) SetStatusText(content string, style display.Style) {
	h.publish(Message{Region: display.RegionStatus, Content: content, Style: style.String()})
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) publish(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.Region == display.RegionTimer {
		h.timer = msg
	} else {
		h.status = msg
	}
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debug("[Web] dropping slow client %s", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
}

// register adds a client and queues the current state for it.
func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.send <- h.timer
	c.send <- h.status
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Handler serves the page on / and the stream on /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/", serveHTML)
	return mux
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan Message, clientBuffer)}
	h.register(c)
	h.log.Debug("[Web] client connected %s", conn.RemoteAddr())

	go h.writePump(c)

	// Drain reads so close frames are handled; clients never send data.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.log.Debug("[Web] client disconnected %s", conn.RemoteAddr())
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
		if err := c.conn.WriteJSON(msg); err != nil {
			h.log.Debug("[Web] write error: %v", err)
			h.remove(c)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck
}

// ListenAndServe serves the mirror on addr until ctx is canceled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	h.log.Info("Web mirror on http://%s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serveHTML(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(htmlContent)) //nolint:errcheck
}

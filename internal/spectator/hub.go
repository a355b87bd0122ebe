// Package spectator pushes recorded match events to websocket viewers.
package spectator

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/marcgardent/fencing-codingame-private/internal/combat"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 256
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to every connected viewer. Late viewers first get the
// events published so far, so a page opened mid-bout can rebuild the piste.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	backlog [][]byte
	closed  bool

	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Publish queues ev for every viewer. A viewer too slow to keep up is
// dropped rather than stalling the match.
func (h *Hub) Publish(ev combat.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Warn("marshal event", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.backlog = append(h.backlog, data)
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("dropping slow viewer", zap.String("remote", c.conn.RemoteAddr().String()))
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer; later Publish calls are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "match over"))
		_ = conn.Close()
		return
	}
	backlog := append([][]byte(nil), h.backlog...)
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug("viewer joined", zap.String("remote", r.RemoteAddr), zap.Int("backlog", len(backlog)))
	go h.writeLoop(c, backlog)
	h.readLoop(c)
}

// readLoop only serves pongs and notices the viewer leaving.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, backlog [][]byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	write := func(kind int, data []byte) bool {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return c.conn.WriteMessage(kind, data) == nil
	}
	for _, data := range backlog {
		if !write(websocket.TextMessage, data) {
			return
		}
	}
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match over"))
				return
			}
			if !write(websocket.TextMessage, data) {
				return
			}
		case <-ticker.C:
			if !write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

package keepalive

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

const writeWait = 5 * time.Second

// Hub fans emitted console lines out to websocket subscribers.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]*sync.Mutex
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]*sync.Mutex)}
}

func (h *Hub) Add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = &sync.Mutex{}
	h.mu.Unlock()
}

func (h *Hub) Remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	_ = c.Close()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Publish sends line to every subscriber. Slow or dead peers are dropped.
func (h *Hub) Publish(line string) {
	h.mu.RLock()
	var dead []*websocket.Conn
	for c, wmu := range h.conns {
		wmu.Lock()
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.WriteMessage(websocket.TextMessage, []byte(line))
		wmu.Unlock()
		if err != nil {
			logging.L().Warn("feed write failed", "remote", c.RemoteAddr().String(), "error", err)
			dead = append(dead, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range dead {
		h.Remove(c)
	}
}

package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
)

const writeTimeout = 3 * time.Second

// Hub fans patches out to every connected viewer. It owns the patch sequence
// counter, so every client observes the same ordering.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	sequence uint64
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish stamps the next sequence number onto a patch and broadcasts it.
// Connections that cannot be written to within the timeout are dropped.
func (h *Hub) Publish(eventID int64, patchType string, payload any) uint64 {
	seq := atomic.AddUint64(&h.sequence, 1)
	env := protocol.PatchEnvelope{
		Sequence: seq,
		EventID:  eventID,
		Type:     patchType,
		Payload:  payload,
	}
	data, _ := json.Marshal(env)
	h.broadcast(data)
	return seq
}

func (h *Hub) broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.conns {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.conns, conn)
		}
	}
	h.mu.Unlock()
}

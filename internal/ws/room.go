package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// room is the transport-level member set for one named battle room. It knows
// nothing about slots or lifecycle; that lives in the arena directory.
type room struct {
	mu    sync.RWMutex
	conns map[*clientConn]struct{}
}

func newRoom() *room { return &room{conns: map[*clientConn]struct{}{}} }

func (r *room) add(c *clientConn) {
	r.mu.Lock()
	r.conns[c] = struct{}{}
	r.mu.Unlock()
}

// remove drops the connection from the member set. The socket stays open;
// closing is the hub's job on Drop.
func (r *room) remove(c *clientConn) {
	r.mu.Lock()
	delete(r.conns, c)
	r.mu.Unlock()
}

func (r *room) empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns) == 0
}

func (r *room) broadcast(msg []byte) {
	// Snapshot the member set, then do the I/O outside the lock.
	r.mu.RLock()
	conns := make([]*clientConn, 0, len(r.conns))
	for c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	for _, c := range conns {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			// A failed write means a dying socket; its reader loop will run
			// the full departure path shortly. Stop addressing it here.
			r.remove(c)
		}
	}
}

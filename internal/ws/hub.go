package ws

import (
	"sync"
)

// Hub indexes live connections by ID and room membership by room name.
// Membership is driven by the matchmaking directory (via the Broadcaster),
// not by the transport handshake: a freshly accepted connection belongs to no
// room until it hosts or joins.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*clientConn
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*clientConn),
		rooms: make(map[string]*room),
	}
}

// Track registers a freshly accepted connection under its transport ID.
func (h *Hub) Track(connID string, c *clientConn) {
	h.mu.Lock()
	h.conns[connID] = c
	h.mu.Unlock()
}

// Drop forgets the connection and closes the socket. Room membership is
// expected to have been cleared through Leave already.
func (h *Hub) Drop(connID string) {
	h.mu.Lock()
	c := h.conns[connID]
	delete(h.conns, connID)
	h.mu.Unlock()

	if c != nil {
		c.rawConn.Close()
	}
}

func (h *Hub) Join(roomName, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := h.conns[connID]
	if c == nil {
		return
	}
	r := h.rooms[roomName]
	if r == nil {
		r = newRoom()
		h.rooms[roomName] = r
	}
	r.add(c)
}

func (h *Hub) Leave(roomName, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := h.conns[connID]
	r := h.rooms[roomName]
	if c == nil || r == nil {
		return
	}
	r.remove(c)
	if r.empty() {
		delete(h.rooms, roomName)
	}
}

// Broadcast delivers a raw frame to every connection in the room.
func (h *Hub) Broadcast(roomName string, msg []byte) {
	h.mu.RLock()
	r := h.rooms[roomName]
	h.mu.RUnlock()

	if r != nil {
		r.broadcast(msg)
	}
}

// Send writes a JSON value to a single connection.
func (h *Hub) Send(connID string, v any) error {
	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()

	if c == nil {
		return nil // connection already gone; nothing to deliver
	}
	return c.writeJSON(v)
}

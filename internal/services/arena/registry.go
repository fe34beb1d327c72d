package arena

import "go.uber.org/zap"

// Register creates a registry entry with no room. Each transport connection
// registers exactly once for its lifetime.
func (svc *arenaService) Register(connID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, ok := svc.conns[connID]; ok {
		return ErrDuplicateConnection
	}
	svc.conns[connID] = nil
	return nil
}

// Unregister removes the entry, departing the connection's room first via the
// recorded lookup. Missing entries are logged as an inconsistency, not fatal.
func (svc *arenaService) Unregister(connID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, ok := svc.conns[connID]
	if !ok {
		zap.L().Warn("arena.unregister_unknown_conn", zap.String("conn_id", connID))
		return
	}
	if room != nil {
		svc.leaveLocked(connID, room)
	}
	delete(svc.conns, connID)
}

// RoomOf reports the room the connection currently occupies, if any.
func (svc *arenaService) RoomOf(connID string) (*Room, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room := svc.conns[connID]
	if room == nil {
		return nil, false
	}
	return room, true
}

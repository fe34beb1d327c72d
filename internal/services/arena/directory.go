package arena

import (
	"go.uber.org/zap"
)

// Host creates a room in Open state with the caller in the host slot and
// announces it on the new room's channel.
func (svc *arenaService) Host(displayName, connID string) (*Room, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if cur, ok := svc.conns[connID]; !ok {
		zap.L().Warn("arena.host_unregistered_conn", zap.String("conn_id", connID))
	} else if cur != nil {
		return nil, ErrAlreadyInRoom
	}

	name, err := svc.names.generate(func(candidate string) bool {
		_, exists := svc.byName[candidate]
		return exists
	})
	if err != nil {
		return nil, err
	}

	room := &Room{
		Name:  name,
		Host:  Slot{DisplayName: displayName, ConnID: connID},
		State: StateOpen,
	}
	svc.rooms = append(svc.rooms, room)
	svc.byName[name] = room
	svc.conns[connID] = room

	svc.bc.Join(connID, name)
	svc.bc.Publish(name, "hosting", room.descriptor())

	zap.L().Info("arena.room_hosted",
		zap.String("room", name), zap.String("host", displayName))
	return room, nil
}

// Join claims the guest slot of the earliest-hosted open room (first-fit,
// FIFO fairness). The scan and the claim happen under the directory lock, so
// two concurrent joiners can never both take the same slot. With no open room
// available the caller alone receives "nojoin" and no room is returned.
func (svc *arenaService) Join(displayName, connID string) (*Room, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if cur, ok := svc.conns[connID]; !ok {
		zap.L().Warn("arena.join_unregistered_conn", zap.String("conn_id", connID))
	} else if cur != nil {
		return nil, ErrAlreadyInRoom
	}

	for _, room := range svc.rooms {
		if room.State != StateOpen {
			continue
		}
		room.Guest = Slot{DisplayName: displayName, ConnID: connID}
		room.State = StateFull
		svc.conns[connID] = room

		svc.bc.Join(connID, room.Name)
		svc.bc.Publish(room.Name, "joining", room.descriptor())

		zap.L().Info("arena.room_joined",
			zap.String("room", room.Name), zap.String("guest", displayName))
		return room, nil
	}

	svc.bc.EmitTo(connID, "nojoin", nil)
	return nil, nil
}

// Leave clears the connection's slot in its room. Leaving a room the
// connection does not occupy is a no-op.
func (svc *arenaService) Leave(connID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room := svc.conns[connID]
	if room == nil {
		return
	}
	svc.leaveLocked(connID, room)
}

// leaveLocked runs the departure transition. A Full room becomes Abandoned
// and the remaining occupant gets a surrender-equivalent notice; an Open room
// (host leaving before a match) is removed silently. Either way the room is
// terminal and drops out of the directory.
func (svc *arenaService) leaveLocked(connID string, room *Room) {
	departed, _ := room.occupant(connID)
	svc.conns[connID] = nil
	svc.bc.Leave(connID, room.Name)

	wasFull := room.State == StateFull
	if wasFull {
		room.State = StateAbandoned
	}
	svc.removeRoomLocked(room)

	if remaining, ok := room.other(connID); ok && wasFull {
		svc.conns[remaining.ConnID] = nil
		svc.bc.EmitTo(remaining.ConnID, "surrender",
			SurrenderNotice{SurrenderPlayer: departed.DisplayName})
		svc.bc.Leave(remaining.ConnID, room.Name)
	}

	zap.L().Info("arena.room_left",
		zap.String("room", room.Name),
		zap.String("conn_id", connID),
		zap.String("state", room.State.String()))
}

// removeRoomLocked drops a terminal room from the directory and discards its
// battle state.
func (svc *arenaService) removeRoomLocked(room *Room) {
	delete(svc.byName, room.Name)
	delete(svc.fighters, room.Name)
	for i, r := range svc.rooms {
		if r == room {
			svc.rooms = append(svc.rooms[:i], svc.rooms[i+1:]...)
			break
		}
	}
}

// ListOpen returns descriptors of rooms still waiting for a guest, in
// creation order (the same order Join scans them).
func (svc *arenaService) ListOpen() []Descriptor {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	out := make([]Descriptor, 0, len(svc.rooms))
	for _, room := range svc.rooms {
		if room.State == StateOpen {
			out = append(out, room.descriptor())
		}
	}
	return out
}

// Stats counts open and full rooms for the periodic room watcher.
func (svc *arenaService) Stats() (open, full int) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for _, room := range svc.rooms {
		switch room.State {
		case StateOpen:
			open++
		case StateFull:
			full++
		}
	}
	return open, full
}

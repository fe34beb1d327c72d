package arena

import (
	"encoding/json"
	"math/rand"
	"sync"
)

// Broadcaster is the transport-side fan-out collaborator. Publish delivers an
// event to every connection joined to a room; EmitTo targets one connection
// (nojoin replies, departure notices). The arena never touches raw sockets.
type Broadcaster interface {
	Publish(room, event string, payload any)
	Join(connID, room string)
	Leave(connID, room string)
	EmitTo(connID, event string, payload any)
}

type IArenaService interface {
	// Connection registry.
	Register(connID string) error
	Unregister(connID string)
	RoomOf(connID string) (*Room, bool)

	// Matchmaking directory.
	Host(displayName, connID string) (*Room, error)
	Join(displayName, connID string) (*Room, error)
	Leave(connID string)
	ListOpen() []Descriptor
	Stats() (open, full int)

	// Battle session engine.
	PickFighter(roomName, connID string, squaddie json.RawMessage) error
	Attack(roomName, connID string, damage, defense float64, monID int) (int, error)
	Defend(roomName, connID string, monID int) error
	Surrender(roomName, connID string) error
}

// arenaService owns the only shared mutable state of the coordinator: the
// room index and the connection-to-room map. One mutex serializes every
// structural mutation and the publishes it orders, so broadcast order matches
// acceptance order. All work inside the lock is in-memory; the only I/O is
// the publish itself, which is the ordering point.
type arenaService struct {
	bc    Broadcaster
	names *nameGenerator

	mu       sync.Mutex
	rng      *rand.Rand       // guarded by mu; shared by names and damage rolls
	conns    map[string]*Room // registry: connID -> current room (nil = none)
	rooms    []*Room          // creation order, for first-fit matchmaking
	byName   map[string]*Room
	fighters map[string]map[string]json.RawMessage // roomName -> connID -> squaddie
}

var _ IArenaService = (*arenaService)(nil)

func NewArenaService(bc Broadcaster, nameAttempts int, seed int64) IArenaService {
	rng := rand.New(rand.NewSource(seed))
	return &arenaService{
		bc:       bc,
		names:    newNameGenerator(rng, nameAttempts),
		rng:      rng,
		conns:    make(map[string]*Room),
		byName:   make(map[string]*Room),
		fighters: make(map[string]map[string]json.RawMessage),
	}
}

// resolveFull looks a room up and checks the caller may fight in it: the room
// must exist, the sender must occupy it (a room the sender does not occupy is
// unknown to them), and it must be battle-ready.
func (svc *arenaService) resolveFull(roomName, connID string) (*Room, Slot, error) {
	room, ok := svc.byName[roomName]
	if !ok {
		return nil, Slot{}, ErrUnknownRoom
	}
	slot, ok := room.occupant(connID)
	if !ok {
		return nil, Slot{}, ErrUnknownRoom
	}
	if room.State != StateFull {
		return nil, Slot{}, ErrRoomNotReady
	}
	return room, slot, nil
}

package arena

import "errors"

// RoomState tracks a room through its lifecycle:
// Open (waiting for guest) -> Full (battle-ready) -> Concluded | Abandoned.
// Concluded and Abandoned are terminal; the directory drops the room on entry.
type RoomState int

const (
	StateOpen RoomState = iota
	StateFull
	StateConcluded
	StateAbandoned
)

func (s RoomState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateFull:
		return "FULL"
	case StateConcluded:
		return "CONCLUDED"
	case StateAbandoned:
		return "ABANDONED"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrDuplicateConnection = errors.New("connection already registered")
	ErrAlreadyInRoom       = errors.New("connection already in a room")
	ErrUnknownRoom         = errors.New("unknown room")
	ErrRoomNotReady        = errors.New("room not ready")
	ErrNamesExhausted      = errors.New("room name generation exhausted")
)

// Slot holds one participant of a room.
type Slot struct {
	DisplayName string
	ConnID      string
}

// Room is a named pairing context for one battle session. Host is filled at
// creation; Guest is claimed by the first successful join.
type Room struct {
	Name  string
	Host  Slot
	Guest Slot
	State RoomState
}

// Descriptor is the wire shape of a room, broadcast on "hosting"/"joining".
// Field names follow the client contract.
type Descriptor struct {
	RoomName  string `json:"roomName"`
	Player1   string `json:"player1"`
	Player1ID string `json:"player1ID"`
	Player2   string `json:"player2,omitempty"`
	Player2ID string `json:"player2ID,omitempty"`
	State     string `json:"state"`
}

func (r *Room) descriptor() Descriptor {
	return Descriptor{
		RoomName:  r.Name,
		Player1:   r.Host.DisplayName,
		Player1ID: r.Host.ConnID,
		Player2:   r.Guest.DisplayName,
		Player2ID: r.Guest.ConnID,
		State:     r.State.String(),
	}
}

// other returns the occupant that is not connID, if any.
func (r *Room) other(connID string) (Slot, bool) {
	if r.Host.ConnID != "" && r.Host.ConnID != connID {
		return r.Host, true
	}
	if r.Guest.ConnID != "" && r.Guest.ConnID != connID {
		return r.Guest, true
	}
	return Slot{}, false
}

// occupant returns the slot held by connID.
func (r *Room) occupant(connID string) (Slot, bool) {
	if r.Host.ConnID == connID {
		return r.Host, true
	}
	if r.Guest.ConnID == connID {
		return r.Guest, true
	}
	return Slot{}, false
}

package ws

import "encoding/json"

// Envelope wraps every WS frame, inbound and outbound.
type Envelope struct {
	Event string          `json:"event"`          // e.g. "host", "fighter picked"
	Body  json.RawMessage `json:"body,omitempty"` // event-specific JSON object
}

// outboundEnvelope is the marshalling twin of Envelope for frames this server
// originates (Body not yet serialized).
type outboundEnvelope struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// ──────────────────────────── Request DTOs ───────────────────────────────────

// HostRequest is the body for "host".
type HostRequest struct {
	DisplayName string `json:"displayName"`
}

// JoinRequest is the body for "join".
type JoinRequest struct {
	DisplayName string `json:"displayName"`
}

// PickFighterRequest is the body for "fighter picked". The squaddie
// descriptor is relayed untouched; the engine does not validate it.
type PickFighterRequest struct {
	RoomName string          `json:"roomName"`
	Squaddie json.RawMessage `json:"squaddie"`
}

// AttackRequest is the body for "attack". Damage and defense are the raw
// client-side stats feeding the damage roll.
type AttackRequest struct {
	RoomName string  `json:"roomName"`
	Damage   float64 `json:"damage"`
	Defense  float64 `json:"defense"`
	MonID    int     `json:"monID"`
}

// DefendRequest is the body for "defend".
type DefendRequest struct {
	RoomName string `json:"roomName"`
	MonID    int    `json:"monID"`
}

// SurrenderRequest is the body for "surrender".
type SurrenderRequest struct {
	RoomName string `json:"roomName"`
}

// ErrorBody is sent to the originating connection only; errors are never
// broadcast to the room.
type ErrorBody struct {
	Error string `json:"error"`
}

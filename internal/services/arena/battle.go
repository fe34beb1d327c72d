package arena

import (
	"encoding/json"
	"math"

	"go.uber.org/zap"
)

// Battle event payloads, broadcast to the room's channel.
type FighterChosen struct {
	Player   string          `json:"player"`
	Squaddie json.RawMessage `json:"squaddie"`
}

type AttackNotice struct {
	Damage int `json:"damage"`
	MonID  int `json:"monID"`
}

type DefendNotice struct {
	MonID int `json:"monID"`
}

type SurrenderNotice struct {
	SurrenderPlayer string `json:"surrenderPlayer"`
}

// PickFighter records the sender's selected squaddie and announces it. The
// engine is deliberately permissive about turn order: attacks are accepted
// whether or not both players have picked.
func (svc *arenaService) PickFighter(roomName, connID string, squaddie json.RawMessage) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, slot, err := svc.resolveFull(roomName, connID)
	if err != nil {
		return err
	}

	picks := svc.fighters[roomName]
	if picks == nil {
		picks = make(map[string]json.RawMessage, 2)
		svc.fighters[roomName] = picks
	}
	picks[connID] = squaddie

	svc.bc.Publish(room.Name, "fighter chosen", FighterChosen{
		Player:   slot.DisplayName,
		Squaddie: squaddie,
	})
	return nil
}

// Attack resolves a damage roll against the target monster and broadcasts the
// result. Damage values are client-supplied stats; no anti-cheat validation
// happens here.
func (svc *arenaService) Attack(roomName, connID string, damage, defense float64, monID int) (int, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, _, err := svc.resolveFull(roomName, connID)
	if err != nil {
		return 0, err
	}

	total := resolveDamage(damage, defense, svc.rng.Float64(), svc.rng.Float64())
	svc.bc.Publish(room.Name, "attack", AttackNotice{Damage: total, MonID: monID})
	return total, nil
}

// Defend is a pure relay; no state changes.
func (svc *arenaService) Defend(roomName, connID string, monID int) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, _, err := svc.resolveFull(roomName, connID)
	if err != nil {
		return err
	}

	svc.bc.Publish(room.Name, "defend", DefendNotice{MonID: monID})
	return nil
}

// Surrender announces the forfeit to both occupants, concludes the room and
// removes it from the directory.
func (svc *arenaService) Surrender(roomName, connID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	room, slot, err := svc.resolveFull(roomName, connID)
	if err != nil {
		return err
	}

	svc.bc.Publish(room.Name, "surrender",
		SurrenderNotice{SurrenderPlayer: slot.DisplayName})

	room.State = StateConcluded
	svc.removeRoomLocked(room)
	for _, occupant := range []Slot{room.Host, room.Guest} {
		if occupant.ConnID == "" {
			continue
		}
		svc.conns[occupant.ConnID] = nil
		svc.bc.Leave(occupant.ConnID, room.Name)
	}

	zap.L().Info("arena.room_concluded",
		zap.String("room", room.Name),
		zap.String("surrendered_by", slot.DisplayName))
	return nil
}

// resolveDamage computes the broadcast damage value:
//
//	total = ceil(damage*u1 - defense*u2) + 3
//
// with u1, u2 uniform in [0,1). Hitting the exact maximum-roll value
// (damage + 3 - defense) grants a +2 bonus; the floor is 1 so a hit never
// does zero or negative damage.
func resolveDamage(damage, defense, u1, u2 float64) int {
	total := int(math.Ceil(damage*u1-defense*u2)) + 3

	if float64(total) == damage+3-defense {
		total += 2
	}

	if total < 1 {
		total = 1
	}
	return total
}

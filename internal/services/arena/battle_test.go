package arena

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func fullRoom(t *testing.T) (*arenaService, *fakeChannel, *Room) {
	t.Helper()
	svc, ch := newTestArena(t)
	mustRegister(t, svc, "connA", "connB")
	room, err := svc.Host("Ana", "connA")
	require.NoError(t, err)
	_, err = svc.Join("Bob", "connB")
	require.NoError(t, err)
	return svc, ch, room
}

func TestResolveDamageMaximumRollBonus(t *testing.T) {
	// Draws of exactly 1 and 0 give base = damage + 3 - defense, which is the
	// edge the +2 bonus keys off: ceil(10*1 - 0*0) + 3 = 13, bonus -> 15.
	require.Equal(t, 15, resolveDamage(10, 0, 1, 0))
}

func TestResolveDamageTypicalRoll(t *testing.T) {
	// ceil(10*0.5 - 0*0.5) + 3 = 8, no bonus.
	require.Equal(t, 8, resolveDamage(10, 0, 0.5, 0.5))
}

func TestResolveDamageBonusRequiresExactEdge(t *testing.T) {
	// base = ceil(10*1 - 4*0) + 3 = 13, but the edge value is 10+3-4 = 9,
	// so no bonus even on a maximum attack draw.
	require.Equal(t, 13, resolveDamage(10, 4, 1, 0))
	// base = ceil(10*0.8 - 2*0.5) + 3 = 10, edge is 10+3-2 = 11: no bonus.
	require.Equal(t, 10, resolveDamage(10, 2, 0.8, 0.5))
}

func TestResolveDamageClampsToOne(t *testing.T) {
	require.Equal(t, 1, resolveDamage(1, 100, 0.99, 0.99))
	require.Equal(t, 1, resolveDamage(1, 100, 0.5, 0.5))

	// Whatever the draws, an outmatched attacker still lands at least 1.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		got := resolveDamage(1, 100, rng.Float64(), rng.Float64())
		require.GreaterOrEqual(t, got, 1)
	}
}

func TestCombatRequiresFullRoom(t *testing.T) {
	svc, _ := newTestArena(t)
	mustRegister(t, svc, "connA")
	room, err := svc.Host("Ana", "connA")
	require.NoError(t, err)

	_, err = svc.Attack(room.Name, "connA", 10, 0, 1)
	require.ErrorIs(t, err, ErrRoomNotReady)
	require.ErrorIs(t, svc.Defend(room.Name, "connA", 1), ErrRoomNotReady)
	require.ErrorIs(t, svc.Surrender(room.Name, "connA"), ErrRoomNotReady)
	require.ErrorIs(t,
		svc.PickFighter(room.Name, "connA", json.RawMessage(`{}`)), ErrRoomNotReady)
}

func TestCombatInUnknownRoomFails(t *testing.T) {
	svc, _ := newTestArena(t)
	mustRegister(t, svc, "connA")

	_, err := svc.Attack("NoSuchRoom", "connA", 10, 0, 1)
	require.ErrorIs(t, err, ErrUnknownRoom)
}

// Combat events for room R are only accepted from connections occupying R.
func TestCombatFromNonOccupantFails(t *testing.T) {
	svc, _, room := fullRoom(t)
	mustRegister(t, svc, "lurker")

	_, err := svc.Attack(room.Name, "lurker", 10, 0, 1)
	require.ErrorIs(t, err, ErrUnknownRoom)
	require.ErrorIs(t, svc.Defend(room.Name, "lurker", 1), ErrUnknownRoom)
}

func TestPickFighterRecordsAndBroadcasts(t *testing.T) {
	svc, ch, room := fullRoom(t)

	squaddie := json.RawMessage(`{"monID":7,"name":"Sparky"}`)
	require.NoError(t, svc.PickFighter(room.Name, "connB", squaddie))

	last := ch.published[len(ch.published)-1]
	require.Equal(t, "fighter chosen", last.Event)
	require.Equal(t, room.Name, last.Room)
	require.Equal(t, FighterChosen{Player: "Bob", Squaddie: squaddie}, last.Payload)
	require.Equal(t, squaddie, svc.fighters[room.Name]["connB"])
}

func TestAttackBroadcastsResolvedDamage(t *testing.T) {
	svc, ch, room := fullRoom(t)

	dmg, err := svc.Attack(room.Name, "connA", 20, 5, 3)
	require.NoError(t, err)
	require.GreaterOrEqual(t, dmg, 1)

	last := ch.published[len(ch.published)-1]
	require.Equal(t, "attack", last.Event)
	require.Equal(t, AttackNotice{Damage: dmg, MonID: 3}, last.Payload)
}

func TestDefendRelays(t *testing.T) {
	svc, ch, room := fullRoom(t)

	require.NoError(t, svc.Defend(room.Name, "connB", 9))

	last := ch.published[len(ch.published)-1]
	require.Equal(t, "defend", last.Event)
	require.Equal(t, DefendNotice{MonID: 9}, last.Payload)
}

func TestSurrenderConcludesAndRemovesRoom(t *testing.T) {
	svc, ch, room := fullRoom(t)

	require.NoError(t, svc.Surrender(room.Name, "connB"))
	require.Equal(t, StateConcluded, room.State)

	last := ch.published[len(ch.published)-1]
	require.Equal(t, "surrender", last.Event)
	require.Equal(t, SurrenderNotice{SurrenderPlayer: "Bob"}, last.Payload)

	require.ErrorIs(t, svc.Defend(room.Name, "connA", 1), ErrUnknownRoom)
}

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicate(t *testing.T) {
	svc, _ := newTestArena(t)

	require.NoError(t, svc.Register("conn1"))
	require.ErrorIs(t, svc.Register("conn1"), ErrDuplicateConnection)
}

func TestUnregisterUnknownConnIsNoOp(t *testing.T) {
	svc, ch := newTestArena(t)

	svc.Unregister("ghost")
	require.Empty(t, ch.published)
	require.Empty(t, ch.left)
}

func TestRoomOfTracksMembership(t *testing.T) {
	svc, _ := newTestArena(t)
	mustRegister(t, svc, "conn1")

	_, ok := svc.RoomOf("conn1")
	require.False(t, ok)

	room, err := svc.Host("Ana", "conn1")
	require.NoError(t, err)

	got, ok := svc.RoomOf("conn1")
	require.True(t, ok)
	require.Equal(t, room, got)

	svc.Leave("conn1")
	_, ok = svc.RoomOf("conn1")
	require.False(t, ok)
}

func TestUnregisterFreesConnIDForReuse(t *testing.T) {
	svc, _ := newTestArena(t)

	require.NoError(t, svc.Register("conn1"))
	svc.Unregister("conn1")
	require.NoError(t, svc.Register("conn1"))
}

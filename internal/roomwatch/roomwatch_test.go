package roomwatch

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
)

type stubStats struct {
	open, full int
}

func (s stubStats) Stats() (int, int) { return s.open, s.full }

func TestMirrorOnceWritesCounts(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectHSet(statsKey, "open", 3, "full", 2).SetVal(2)
	mirrorOnce(context.Background(), rdb, stubStats{open: 3, full: 2})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMirrorOnceToleratesRedisFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectHSet(statsKey, "open", 0, "full", 0).SetErr(errors.New("conn reset"))
	mirrorOnce(context.Background(), rdb, stubStats{})

	require.NoError(t, mock.ExpectationsWereMet())
}

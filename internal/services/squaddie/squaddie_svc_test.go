package squaddie

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMockSvc(t *testing.T) (ISquaddieService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSquaddieService(db), mock
}

func TestListUserSquaddies(t *testing.T) {
	svc, mock := newMockSvc(t)

	rows := sqlmock.NewRows([]string{
		"user_monster_id", "name", "nickname", "level", "xp", "damage", "defense", "hp",
	}).
		AddRow(7, "Ember Drake", "Sparky", 3, 120, 14, 6, 40).
		AddRow(9, "Moss Golem", "Pebbles", 1, 0, 8, 12, 55)

	mock.ExpectQuery(`SELECT um\.user_monster_id, m\.name`).
		WithArgs("user123").
		WillReturnRows(rows)

	got, err := svc.ListUserSquaddies(context.Background(), "user123")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, SquaddieDTO{
		MonID: 7, Species: "Ember Drake", Nickname: "Sparky",
		Level: 3, XP: 120, Damage: 14, Defense: 6, HP: 40,
	}, got[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddXP(t *testing.T) {
	svc, mock := newMockSvc(t)

	mock.ExpectExec(`UPDATE user_monster SET xp = xp \+ \$2`).
		WithArgs(7, 50).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.AddXP(context.Background(), 7, 50))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLevelUpResetsXP(t *testing.T) {
	svc, mock := newMockSvc(t)

	mock.ExpectExec(`UPDATE user_monster SET level = level \+ 1, xp = 0`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.LevelUp(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameUnknownSquaddie(t *testing.T) {
	svc, mock := newMockSvc(t)

	mock.ExpectExec(`UPDATE user_monster SET nickname = \$2`).
		WithArgs(999, "Ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Rename(context.Background(), 999, "Ghost")
	require.ErrorIs(t, err, ErrSquaddieNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

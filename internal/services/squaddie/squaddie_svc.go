package squaddie

import (
	"context"
	"database/sql"
	"errors"
)

// SquaddieDTO is one monster in a user's roster, the joined view of the
// user_monster row and its monster template. The battle payloads reference
// these by monID.
type SquaddieDTO struct {
	MonID    int    `json:"monID"`
	Species  string `json:"species"`
	Nickname string `json:"nickname"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
	Damage   int    `json:"damage"`
	Defense  int    `json:"defense"`
	HP       int    `json:"hp"`
}

var ErrSquaddieNotFound = errors.New("squaddie not found")

type ISquaddieService interface {
	ListUserSquaddies(ctx context.Context, userID string) ([]SquaddieDTO, error)
	AddXP(ctx context.Context, monID, xp int) error
	LevelUp(ctx context.Context, monID int) error
	Rename(ctx context.Context, monID int, nickname string) error
}

type squaddieService struct {
	db *sql.DB
}

var _ ISquaddieService = (*squaddieService)(nil)

func NewSquaddieService(db *sql.DB) ISquaddieService {
	return &squaddieService{db: db}
}

func (svc *squaddieService) ListUserSquaddies(ctx context.Context, userID string) ([]SquaddieDTO, error) {
	const q = `
	SELECT um.user_monster_id, m.name, um.nickname, um.level, um.xp,
	       m.damage, m.defense, m.hp
	  FROM user_monster um
	  JOIN monster m ON m.monster_id = um.monster_id
	 WHERE um.user_id = $1
	 ORDER BY um.user_monster_id`

	rows, err := svc.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SquaddieDTO
	for rows.Next() {
		var s SquaddieDTO
		if err := rows.Scan(&s.MonID, &s.Species, &s.Nickname, &s.Level, &s.XP,
			&s.Damage, &s.Defense, &s.HP); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AddXP grants post-battle experience. XP values arrive from the client, like
// the damage stats; no validation beyond non-negativity happens server-side.
func (svc *squaddieService) AddXP(ctx context.Context, monID, xp int) error {
	const q = `UPDATE user_monster SET xp = xp + $2 WHERE user_monster_id = $1`
	return svc.execOne(ctx, q, monID, xp)
}

func (svc *squaddieService) LevelUp(ctx context.Context, monID int) error {
	const q = `UPDATE user_monster SET level = level + 1, xp = 0 WHERE user_monster_id = $1`
	return svc.execOne(ctx, q, monID)
}

func (svc *squaddieService) Rename(ctx context.Context, monID int, nickname string) error {
	const q = `UPDATE user_monster SET nickname = $2 WHERE user_monster_id = $1`
	return svc.execOne(ctx, q, monID, nickname)
}

func (svc *squaddieService) execOne(ctx context.Context, q string, args ...any) error {
	res, err := svc.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSquaddieNotFound
	}
	return nil
}

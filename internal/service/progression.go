package service

import (
	"context"
	"errors"

	"farm_webapp/internal/game"
	"farm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProgressionService applies experience to users and resolves level-ups. The
// curve itself lives in the game package; this wraps it in a locked
// read-modify-write.
type ProgressionService struct {
	db    *pgxpool.Pool
	users *repository.UserRepository
}

func NewProgressionService(db *pgxpool.Pool) *ProgressionService {
	return &ProgressionService{
		db:    db,
		users: repository.NewUserRepository(db),
	}
}

// AddExperience adds amount experience points, rolling overflow into
// level-ups, and persists the result.
func (s *ProgressionService) AddExperience(ctx context.Context, userID int64, amount int) (game.LevelResult, error) {
	var zero game.LevelResult
	if amount <= 0 {
		// nothing to apply, report current state untouched
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return zero, ErrUserNotFound
			}
			return zero, err
		}
		return game.LevelResult{
			PreviousLevel: u.Level,
			Level:         u.Level,
			Exp:           u.Exp,
			ExpNextLevel:  u.ExpNextLevel,
		}, nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var level, exp, expNext int
	err = tx.QueryRow(ctx,
		`SELECT level, exp, exp_next_level FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&level, &exp, &expNext)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrUserNotFound
		}
		return zero, err
	}

	res := game.ApplyExperience(level, exp, expNext, amount)

	_, err = tx.Exec(ctx,
		`UPDATE users SET level = $1, exp = $2, exp_next_level = $3 WHERE id = $4`,
		res.Level, res.Exp, res.ExpNextLevel, userID,
	)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}

	return res, nil
}

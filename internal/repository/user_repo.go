package repository

import (
	"context"
	"errors"

	"farm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUsernameTaken = errors.New("username already taken")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password, coins, ranking_points, level, exp, exp_next_level, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.Coins,
		&u.RankingPoints,
		&u.Level,
		&u.Exp,
		&u.ExpNextLevel,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// Create inserts a new user with the starting progression values.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, password)
		 VALUES ($1, $2)
		 RETURNING id, coins, ranking_points, level, exp, exp_next_level, created_at`,
		u.Username, u.Password,
	).Scan(&u.ID, &u.Coins, &u.RankingPoints, &u.Level, &u.Exp, &u.ExpNextLevel, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

// AddCoins credits (or debits, with a negative delta) the user's coin balance.
func (r *UserRepository) AddCoins(ctx context.Context, userID int64, delta int64) (int64, error) {
	var newBalance int64
	err := r.db.QueryRow(ctx,
		`UPDATE users SET coins = coins + $1 WHERE id = $2 AND coins + $1 >= 0 RETURNING coins`,
		delta, userID,
	).Scan(&newBalance)
	return newBalance, err
}

// AddCoinsTx credits coins within an existing transaction.
func (r *UserRepository) AddCoinsTx(ctx context.Context, tx pgx.Tx, userID int64, delta int64) (int64, error) {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE users SET coins = coins + $1 WHERE id = $2 RETURNING coins`,
		delta, userID,
	).Scan(&newBalance)
	return newBalance, err
}

// AddRankingPointsTx credits ranking points within an existing transaction.
func (r *UserRepository) AddRankingPointsTx(ctx context.Context, tx pgx.Tx, userID int64, delta int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET ranking_points = ranking_points + $1 WHERE id = $2`,
		delta, userID,
	)
	return err
}

// RankingEntry represents one row of the global leaderboard.
type RankingEntry struct {
	Rank          int    `json:"rank"`
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	Level         int    `json:"level"`
	RankingPoints int64  `json:"ranking_points"`
}

// GetRanking returns users ordered by ranking points desc, level breaking ties.
func (r *UserRepository) GetRanking(ctx context.Context, limit int) ([]RankingEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, level, ranking_points
		 FROM users
		 ORDER BY ranking_points DESC, level DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []RankingEntry
	rank := 1
	for rows.Next() {
		var e RankingEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Level, &e.RankingPoints); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}

// GetUserRank returns the user's position in the global ranking.
func (r *UserRepository) GetUserRank(ctx context.Context, userID int64) (int, int64, error) {
	var rank int
	var points int64
	err := r.db.QueryRow(ctx, `
		WITH ranked AS (
			SELECT id, ranking_points,
			       RANK() OVER (ORDER BY ranking_points DESC, level DESC) AS rank
			FROM users
		)
		SELECT rank, ranking_points FROM ranked WHERE id = $1
	`, userID).Scan(&rank, &points)
	if err != nil {
		return 0, 0, err
	}
	return rank, points, nil
}

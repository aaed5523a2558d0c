package repository

import (
	"context"
	"time"

	"farm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

func scanAchievement(row pgx.Row) (*domain.Achievement, error) {
	var a domain.Achievement
	err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Category, &a.Kind,
		&a.ProductID, &a.Objective, &a.RewardCoins, &a.RewardPoints, &a.Icon,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAll returns the full achievement catalog with product names resolved.
func (r *AchievementRepository) ListAll(ctx context.Context) ([]*domain.AchievementWithProgress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.name, a.description, a.category, a.kind, a.product_id,
		        a.objective, a.reward_coins, a.reward_points, a.icon, p.name
		 FROM achievements a
		 LEFT JOIN products p ON a.product_id = p.id
		 ORDER BY a.category, a.objective`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.AchievementWithProgress
	for rows.Next() {
		var a domain.AchievementWithProgress
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.Category, &a.Kind, &a.ProductID,
			&a.Objective, &a.RewardCoins, &a.RewardPoints, &a.Icon, &a.ProductName,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}

// ListByUser returns every achievement with the user's progress attached,
// ordered by category, completed first, then objective.
func (r *AchievementRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.AchievementWithProgress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.name, a.description, a.category, a.kind, a.product_id,
		        a.objective, a.reward_coins, a.reward_points, a.icon, p.name,
		        COALESCE(ap.progress, 0), COALESCE(ap.completed, false), ap.completed_at
		 FROM achievements a
		 LEFT JOIN products p ON a.product_id = p.id
		 LEFT JOIN achievement_progress ap ON a.id = ap.achievement_id AND ap.user_id = $1
		 ORDER BY a.category, COALESCE(ap.completed, false) DESC, a.objective`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.AchievementWithProgress
	for rows.Next() {
		var a domain.AchievementWithProgress
		err := rows.Scan(
			&a.ID, &a.Name, &a.Description, &a.Category, &a.Kind, &a.ProductID,
			&a.Objective, &a.RewardCoins, &a.RewardPoints, &a.Icon, &a.ProductName,
			&a.Progress, &a.Completed, &a.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &a)
	}
	return res, rows.Err()
}

// ListIncomplete returns achievement definitions of the given kind and product
// scope the user has not completed yet. productID nil selects the
// category-agnostic definitions.
func (r *AchievementRepository) ListIncomplete(ctx context.Context, userID int64, kind domain.AchievementKind, productID *int64) ([]*domain.Achievement, error) {
	var rows pgx.Rows
	var err error

	if productID != nil {
		rows, err = r.db.Query(ctx,
			`SELECT a.id, a.name, a.description, a.category, a.kind, a.product_id, a.objective, a.reward_coins, a.reward_points, a.icon
			 FROM achievements a
			 LEFT JOIN achievement_progress ap ON a.id = ap.achievement_id AND ap.user_id = $1
			 WHERE a.kind = $2 AND a.product_id = $3
			   AND (ap.completed IS NULL OR ap.completed = false)`,
			userID, kind, *productID)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT a.id, a.name, a.description, a.category, a.kind, a.product_id, a.objective, a.reward_coins, a.reward_points, a.icon
			 FROM achievements a
			 LEFT JOIN achievement_progress ap ON a.id = ap.achievement_id AND ap.user_id = $1
			 WHERE a.kind = $2 AND a.product_id IS NULL
			   AND (ap.completed IS NULL OR ap.completed = false)`,
			userID, kind)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// GetProgressTx reads the user's progress row under a lock, or pgx.ErrNoRows
// when the user never touched this achievement.
func (r *AchievementRepository) GetProgressTx(ctx context.Context, tx pgx.Tx, userID, achievementID int64) (*domain.AchievementProgress, error) {
	var p domain.AchievementProgress
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, achievement_id, progress, completed, completed_at
		 FROM achievement_progress
		 WHERE user_id = $1 AND achievement_id = $2
		 FOR UPDATE`,
		userID, achievementID,
	).Scan(&p.ID, &p.UserID, &p.AchievementID, &p.Progress, &p.Completed, &p.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InsertProgressTx creates a progress row within tx.
func (r *AchievementRepository) InsertProgressTx(ctx context.Context, tx pgx.Tx, userID, achievementID, progress int64, completed bool, completedAt *time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO achievement_progress (user_id, achievement_id, progress, completed, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, achievementID, progress, completed, completedAt,
	)
	return err
}

// UpdateProgressTx rewrites a progress row within tx.
func (r *AchievementRepository) UpdateProgressTx(ctx context.Context, tx pgx.Tx, userID, achievementID, progress int64, completed bool, completedAt *time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE achievement_progress
		 SET progress = $1, completed = $2, completed_at = $3
		 WHERE user_id = $4 AND achievement_id = $5`,
		progress, completed, completedAt, userID, achievementID,
	)
	return err
}

package service

import (
	"context"
	"errors"
	"time"

	"farm_webapp/internal/domain"
	"farm_webapp/internal/game"
	"farm_webapp/internal/logger"
	"farm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AchievementService evaluates achievement progress after game actions and
// grants rewards. Each candidate is checked in its own transaction with the
// progress row locked, so a reward is granted exactly once even under
// concurrent checks.
type AchievementService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	resources    *repository.ResourceRepository
	sales        *repository.SaleRepository
	achievements *repository.AchievementRepository
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{
		db:           db,
		users:        repository.NewUserRepository(db),
		resources:    repository.NewResourceRepository(db),
		sales:        repository.NewSaleRepository(db),
		achievements: repository.NewAchievementRepository(db),
	}
}

// CheckCollect evaluates the collect achievements for one product. Progress is
// synced to the live held quantity, so selling can move it backwards without
// undoing a completion.
func (s *AchievementService) CheckCollect(ctx context.Context, userID, productID int64) ([]domain.CompletedAchievement, error) {
	var live int64
	res, err := s.resources.Get(ctx, userID, productID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	} else {
		live = res.Quantity
	}

	defs, err := s.achievements.ListIncomplete(ctx, userID, domain.KindCollect, &productID)
	if err != nil {
		return nil, err
	}

	var completed []domain.CompletedAchievement
	for _, a := range defs {
		done, err := s.evaluate(ctx, userID, a, func(current int64, already bool) game.ProgressUpdate {
			return game.SyncProgress(current, already, live, a.Objective)
		})
		if err != nil {
			return completed, err
		}
		if done != nil {
			completed = append(completed, *done)
		}
	}
	return completed, nil
}

// CheckSales evaluates the sell-volume achievements against the lifetime sold
// total from the sales ledger.
func (s *AchievementService) CheckSales(ctx context.Context, userID int64) ([]domain.CompletedAchievement, error) {
	total, err := s.sales.TotalQuantity(ctx, userID)
	if err != nil {
		return nil, err
	}

	defs, err := s.achievements.ListIncomplete(ctx, userID, domain.KindSell, nil)
	if err != nil {
		return nil, err
	}

	var completed []domain.CompletedAchievement
	for _, a := range defs {
		done, err := s.evaluate(ctx, userID, a, func(current int64, _ bool) game.ProgressUpdate {
			return game.AdvanceProgress(current, total, a.Objective)
		})
		if err != nil {
			return completed, err
		}
		if done != nil {
			completed = append(completed, *done)
		}
	}
	return completed, nil
}

// CheckLevel evaluates the level milestones against the user's current level.
func (s *AchievementService) CheckLevel(ctx context.Context, userID int64, level int) ([]domain.CompletedAchievement, error) {
	defs, err := s.achievements.ListIncomplete(ctx, userID, domain.KindLevel, nil)
	if err != nil {
		return nil, err
	}

	var completed []domain.CompletedAchievement
	for _, a := range defs {
		done, err := s.evaluate(ctx, userID, a, func(current int64, _ bool) game.ProgressUpdate {
			return game.AdvanceProgress(current, int64(level), a.Objective)
		})
		if err != nil {
			return completed, err
		}
		if done != nil {
			completed = append(completed, *done)
		}
	}
	return completed, nil
}

// EvaluateAll runs every check for the user: collect per touched product, then
// sales, then level. Returns the union of newly completed achievements.
func (s *AchievementService) EvaluateAll(ctx context.Context, userID int64) ([]domain.CompletedAchievement, error) {
	var completed []domain.CompletedAchievement

	productIDs, err := s.resources.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, pid := range productIDs {
		done, err := s.CheckCollect(ctx, userID, pid)
		if err != nil {
			logger.Warn("achievement check failed", "user_id", userID, "product_id", pid, "error", err)
			continue
		}
		completed = append(completed, done...)
	}

	done, err := s.CheckSales(ctx, userID)
	if err != nil {
		return completed, err
	}
	completed = append(completed, done...)

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return completed, ErrUserNotFound
		}
		return completed, err
	}
	done, err = s.CheckLevel(ctx, userID, u.Level)
	if err != nil {
		return completed, err
	}
	completed = append(completed, done...)

	return completed, nil
}

// ListCatalog returns the static achievement catalog.
func (s *AchievementService) ListCatalog(ctx context.Context) ([]*domain.AchievementWithProgress, error) {
	return s.achievements.ListAll(ctx)
}

// ListForUser returns the catalog with the user's progress attached.
func (s *AchievementService) ListForUser(ctx context.Context, userID int64) ([]*domain.AchievementWithProgress, error) {
	return s.achievements.ListByUser(ctx, userID)
}

// evaluate runs one candidate inside its own transaction: lock (or create) the
// progress row, let judge decide the new state, persist it, and grant the
// reward when completion newly flips. Returns the completed achievement only
// on that flip.
func (s *AchievementService) evaluate(ctx context.Context, userID int64, a *domain.Achievement, judge func(current int64, alreadyCompleted bool) game.ProgressUpdate) (*domain.CompletedAchievement, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		exists      bool
		current     int64
		already     bool
		completedAt *time.Time
	)
	p, err := s.achievements.GetProgressTx(ctx, tx, userID, a.ID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	} else {
		exists = true
		current = p.Progress
		already = p.Completed
		completedAt = p.CompletedAt
	}

	if already {
		// lost the race with another check, reward already granted
		return nil, nil
	}

	upd := judge(current, already)
	if !upd.Write {
		return nil, nil
	}

	newlyCompleted := upd.Completed && !already
	if newlyCompleted {
		now := time.Now()
		completedAt = &now
	}

	if exists {
		err = s.achievements.UpdateProgressTx(ctx, tx, userID, a.ID, upd.Progress, upd.Completed, completedAt)
	} else {
		err = s.achievements.InsertProgressTx(ctx, tx, userID, a.ID, upd.Progress, upd.Completed, completedAt)
	}
	if err != nil {
		return nil, err
	}

	if newlyCompleted {
		if a.RewardCoins > 0 {
			if _, err := s.users.AddCoinsTx(ctx, tx, userID, a.RewardCoins); err != nil {
				return nil, err
			}
		}
		if a.RewardPoints > 0 {
			if err := s.users.AddRankingPointsTx(ctx, tx, userID, a.RewardPoints); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if !newlyCompleted {
		return nil, nil
	}
	logger.Info("achievement completed",
		"user_id", userID, "achievement", a.Name, "coins", a.RewardCoins, "points", a.RewardPoints)
	return &domain.CompletedAchievement{Achievement: *a, Progress: upd.Progress}, nil
}

package domain

import "time"

// AchievementKind - o que a conquista mede
type AchievementKind string

const (
	KindCollect AchievementKind = "coleta"
	KindSell    AchievementKind = "venda"
	KindLevel   AchievementKind = "nivel"
)

// Achievement - static definition, seeded once. ProductID is nil for
// category-agnostic achievements (sell totals, level milestones).
type Achievement struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Category     Category        `db:"category" json:"category"`
	Kind         AchievementKind `db:"kind" json:"kind"`
	ProductID    *int64          `db:"product_id" json:"product_id,omitempty"`
	Objective    int64           `db:"objective" json:"objective"`
	RewardCoins  int64           `db:"reward_coins" json:"reward_coins"`
	RewardPoints int64           `db:"reward_points" json:"reward_points"`
	Icon         string          `db:"icon" json:"icon"`
}

// AchievementProgress - per-user progress. Completion is terminal: once the
// completed flag is set the row is never re-evaluated for a reward.
type AchievementProgress struct {
	ID            int64      `db:"id" json:"id"`
	UserID        int64      `db:"user_id" json:"user_id"`
	AchievementID int64      `db:"achievement_id" json:"achievement_id"`
	Progress      int64      `db:"progress" json:"progress"`
	Completed     bool       `db:"completed" json:"completed"`
	CompletedAt   *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// AchievementWithProgress - definition plus the user's progress (for listings).
type AchievementWithProgress struct {
	Achievement
	ProductName *string    `json:"product_name,omitempty"`
	Progress    int64      `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CompletedAchievement - an achievement that transitioned to completed during
// one evaluation call, with the progress value that closed it.
type CompletedAchievement struct {
	Achievement
	Progress int64 `json:"progress"`
}

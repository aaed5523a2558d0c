package domain

import "time"

type User struct {
	ID            int64     `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Password      string    `db:"password" json:"-"`
	Coins         int64     `db:"coins" json:"coins"`
	RankingPoints int64     `db:"ranking_points" json:"ranking_points"`
	Level         int       `db:"level" json:"level"`
	Exp           int       `db:"exp" json:"exp"`
	ExpNextLevel  int       `db:"exp_next_level" json:"exp_next_level"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

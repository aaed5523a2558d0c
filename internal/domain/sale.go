package domain

import "time"

// Sale is one row of the append-only sales ledger. Lifetime sums over this
// table drive the sell achievements.
type Sale struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	Quantity   int64     `db:"quantity" json:"quantity"`
	TotalValue int64     `db:"total_value" json:"total_value"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

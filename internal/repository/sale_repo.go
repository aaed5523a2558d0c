package repository

import (
	"context"

	"farm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SaleRepository struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{db: db}
}

// CreateTx appends a sale record within an existing transaction, so the
// ledger row commits or rolls back together with the balance updates.
func (r *SaleRepository) CreateTx(ctx context.Context, tx pgx.Tx, s *domain.Sale) error {
	return tx.QueryRow(ctx,
		`INSERT INTO sales (user_id, product_id, quantity, total_value)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		s.UserID, s.ProductID, s.Quantity, s.TotalValue,
	).Scan(&s.ID, &s.CreatedAt)
}

// TotalQuantity returns the lifetime sum of units the user has sold.
func (r *SaleRepository) TotalQuantity(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM sales WHERE user_id = $1`,
		userID,
	).Scan(&total)
	return total, err
}

func (r *SaleRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Sale, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, product_id, quantity, total_value, created_at
		 FROM sales
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProductID, &s.Quantity, &s.TotalValue, &s.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &s)
	}
	return res, rows.Err()
}

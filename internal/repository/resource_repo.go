package repository

import (
	"context"

	"farm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceRepository struct {
	db *pgxpool.Pool
}

func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// GetOrCreate returns the user's balance for a product, creating an empty
// record (quantity 0, production level 1) on first touch.
func (r *ResourceRepository) GetOrCreate(ctx context.Context, userID, productID int64) (*domain.Resource, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO resources (user_id, product_id, quantity, production_level)
		 VALUES ($1, $2, 0, 1)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID, productID)
}

func (r *ResourceRepository) Get(ctx context.Context, userID, productID int64) (*domain.Resource, error) {
	var res domain.Resource
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, production_level, speed
		 FROM resources
		 WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	).Scan(&res.ID, &res.UserID, &res.ProductID, &res.Quantity, &res.ProductionLevel, &res.Speed)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddQuantity increments the held quantity in a single atomic statement.
func (r *ResourceRepository) AddQuantity(ctx context.Context, userID, productID, delta int64) (int64, error) {
	var newQty int64
	err := r.db.QueryRow(ctx,
		`UPDATE resources
		 SET quantity = quantity + $1, updated_at = now()
		 WHERE user_id = $2 AND product_id = $3
		 RETURNING quantity`,
		delta, userID, productID,
	).Scan(&newQty)
	return newQty, err
}

// ListByUser returns all of the user's resource balances joined with product
// reference data.
func (r *ResourceRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.ResourceDetails, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.user_id, r.product_id, r.quantity, r.production_level, r.speed,
		        p.name, p.category, p.sale_value, p.description
		 FROM resources r
		 JOIN products p ON r.product_id = p.id
		 WHERE r.user_id = $1
		 ORDER BY p.category, p.sale_value`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.ResourceDetails
	for rows.Next() {
		var d domain.ResourceDetails
		err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.Quantity, &d.ProductionLevel, &d.Speed,
			&d.ProductName, &d.Category, &d.SaleValue, &d.Description,
		)
		if err != nil {
			return nil, err
		}
		res = append(res, &d)
	}
	return res, rows.Err()
}

// ProductIDs returns the ids of every product the user has ever touched.
func (r *ResourceRepository) ProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT product_id FROM resources WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LockQuantityTx reads the quantity under a row lock inside tx.
func (r *ResourceRepository) LockQuantityTx(ctx context.Context, tx pgx.Tx, userID, productID int64) (int64, error) {
	var qty int64
	err := tx.QueryRow(ctx,
		`SELECT quantity FROM resources WHERE user_id = $1 AND product_id = $2 FOR UPDATE`,
		userID, productID,
	).Scan(&qty)
	return qty, err
}

// LockProductionLevelTx reads the production level under a row lock inside tx.
func (r *ResourceRepository) LockProductionLevelTx(ctx context.Context, tx pgx.Tx, userID, productID int64) (int, error) {
	var level int
	err := tx.QueryRow(ctx,
		`SELECT production_level FROM resources WHERE user_id = $1 AND product_id = $2 FOR UPDATE`,
		userID, productID,
	).Scan(&level)
	return level, err
}

// TakeQuantityTx decrements the held quantity within tx.
func (r *ResourceRepository) TakeQuantityTx(ctx context.Context, tx pgx.Tx, userID, productID, qty int64) (int64, error) {
	var newQty int64
	err := tx.QueryRow(ctx,
		`UPDATE resources
		 SET quantity = quantity - $1, updated_at = now()
		 WHERE user_id = $2 AND product_id = $3
		 RETURNING quantity`,
		qty, userID, productID,
	).Scan(&newQty)
	return newQty, err
}

// RaiseProductionLevelTx bumps the production level by one within tx.
func (r *ResourceRepository) RaiseProductionLevelTx(ctx context.Context, tx pgx.Tx, userID, productID int64) (int, error) {
	var newLevel int
	err := tx.QueryRow(ctx,
		`UPDATE resources
		 SET production_level = production_level + 1
		 WHERE user_id = $1 AND product_id = $2
		 RETURNING production_level`,
		userID, productID,
	).Scan(&newLevel)
	return newLevel, err
}

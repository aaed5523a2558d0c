package repository

import (
	"context"

	"farm_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.SaleValue, &p.Description); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return scanProduct(r.db.QueryRow(ctx,
		`SELECT id, name, category, sale_value, description FROM products WHERE id = $1`, id))
}

// GetByName resolves a product name to its full record. Handlers call this
// once at the boundary; everything below works with the resolved id.
func (r *ProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return scanProduct(r.db.QueryRow(ctx,
		`SELECT id, name, category, sale_value, description FROM products WHERE name = $1`, name))
}

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, sale_value, description
		 FROM products
		 ORDER BY category, sale_value`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

package domain

// Resource - saldo de um recurso por (user, product). Created lazily on the
// first interaction with a product; quantity never goes below zero.
type Resource struct {
	ID              int64 `db:"id" json:"id"`
	UserID          int64 `db:"user_id" json:"user_id"`
	ProductID       int64 `db:"product_id" json:"product_id"`
	Quantity        int64 `db:"quantity" json:"quantity"`
	ProductionLevel int   `db:"production_level" json:"production_level"`
	Speed           int   `db:"speed" json:"speed"`
}

// ResourceDetails - resource joined with its product (for API responses).
type ResourceDetails struct {
	Resource
	ProductName string   `json:"product_name"`
	Category    Category `json:"category"`
	SaleValue   int64    `json:"sale_value"`
	Description string   `json:"description"`
}

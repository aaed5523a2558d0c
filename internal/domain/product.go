package domain

// Category - categoria de produto
type Category string

const (
	CategoryAgriculture Category = "agricultura"
	CategoryMining      Category = "mineracao"
	CategoryForestry    Category = "floresta"
	CategoryGeneral     Category = "geral" // only used by achievements
)

// Product is static reference data, seeded once and read-only afterwards.
type Product struct {
	ID          int64    `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	Category    Category `db:"category" json:"category"`
	SaleValue   int64    `db:"sale_value" json:"sale_value"`
	Description string   `db:"description" json:"description"`
}

package service

import (
	"context"
	"errors"

	"farm_webapp/internal/domain"
	"farm_webapp/internal/game"
	"farm_webapp/internal/logger"
	"farm_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientResource = errors.New("insufficient resource quantity")
	ErrInsufficientFunds    = errors.New("insufficient coins")
)

// EconomyService implements collect, sell and upgrade against the ledger.
// Multi-statement operations run in a single transaction with row locks, so
// coins and quantities never diverge from a half-applied sale.
type EconomyService struct {
	db        *pgxpool.Pool
	users     *repository.UserRepository
	products  *repository.ProductRepository
	resources *repository.ResourceRepository
	sales     *repository.SaleRepository
}

func NewEconomyService(db *pgxpool.Pool) *EconomyService {
	return &EconomyService{
		db:        db,
		users:     repository.NewUserRepository(db),
		products:  repository.NewProductRepository(db),
		resources: repository.NewResourceRepository(db),
		sales:     repository.NewSaleRepository(db),
	}
}

// CollectResult is the outcome of one collect click.
type CollectResult struct {
	Gained      int64 `json:"gained"`
	NewQuantity int64 `json:"new_quantity"`
}

// Collect adds production_level units of the product to the user's balance,
// creating the balance record on first touch. The increment itself is a
// single atomic statement.
func (s *EconomyService) Collect(ctx context.Context, userID, productID int64) (*CollectResult, error) {
	res, err := s.resources.GetOrCreate(ctx, userID, productID)
	if err != nil {
		// first touch of a product id that isn't in the catalog trips the FK
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	gain := int64(res.ProductionLevel)
	if gain < 1 {
		gain = 1
	}

	newQty, err := s.resources.AddQuantity(ctx, userID, productID, gain)
	if err != nil {
		return nil, err
	}

	return &CollectResult{Gained: gain, NewQuantity: newQty}, nil
}

// SaleResult is the outcome of a successful sell.
type SaleResult struct {
	Quantity    int64 `json:"quantity"`
	UnitValue   int64 `json:"unit_value"`
	TotalValue  int64 `json:"total_value"`
	NewQuantity int64 `json:"new_quantity"`
	NewCoins    int64 `json:"new_coins"`
}

// Sell trades qty units for coins. Balance decrement, coin credit and the
// sale ledger row are one transaction: all three commit or none do.
func (s *EconomyService) Sell(ctx context.Context, userID, productID, qty int64) (*SaleResult, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	held, err := s.resources.LockQuantityTx(ctx, tx, userID, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// never collected this product, nothing to sell
			return nil, ErrInsufficientResource
		}
		return nil, err
	}
	if held < qty {
		return nil, ErrInsufficientResource
	}

	total := qty * product.SaleValue

	newQty, err := s.resources.TakeQuantityTx(ctx, tx, userID, productID, qty)
	if err != nil {
		return nil, err
	}

	newCoins, err := s.users.AddCoinsTx(ctx, tx, userID, total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sale := &domain.Sale{
		UserID:     userID,
		ProductID:  productID,
		Quantity:   qty,
		TotalValue: total,
	}
	if err := s.sales.CreateTx(ctx, tx, sale); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SaleResult{
		Quantity:    qty,
		UnitValue:   product.SaleValue,
		TotalValue:  total,
		NewQuantity: newQty,
		NewCoins:    newCoins,
	}, nil
}

// SellAllResult sums the outcome of selling every held resource.
type SellAllResult struct {
	TotalValue int64 `json:"total_value"`
	ItemsSold  int   `json:"items_sold"`
	Skipped    int   `json:"skipped"`
}

// SellAll sells every resource with a positive quantity. Each item is its own
// transaction: a failure mid-way leaves the earlier sales committed and is
// reported in Skipped rather than rolled back.
func (s *EconomyService) SellAll(ctx context.Context, userID int64) (*SellAllResult, error) {
	resources, err := s.resources.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &SellAllResult{}
	for _, r := range resources {
		if r.Quantity <= 0 {
			continue
		}
		sale, err := s.Sell(ctx, userID, r.ProductID, r.Quantity)
		if err != nil {
			logger.Warn("sell-all: item failed",
				"user_id", userID, "product_id", r.ProductID, "error", err)
			out.Skipped++
			continue
		}
		out.TotalValue += sale.TotalValue
		out.ItemsSold++
	}
	return out, nil
}

// UpgradeResult is the outcome of a production upgrade.
type UpgradeResult struct {
	PreviousLevel int   `json:"previous_level"`
	NewLevel      int   `json:"new_level"`
	Cost          int64 `json:"cost"`
	NewCoins      int64 `json:"new_coins"`
}

// UpgradeProduction debits the upgrade cost and raises the production level
// by one, atomically.
func (s *EconomyService) UpgradeProduction(ctx context.Context, userID, productID int64) (*UpgradeResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	level, err := s.resources.LockProductionLevelTx(ctx, tx, userID, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}

	cost := game.UpgradeCost(level)

	// check-and-debit in one statement, like a bet debit
	var newCoins int64
	err = tx.QueryRow(ctx,
		`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1 RETURNING coins`,
		cost, userID,
	).Scan(&newCoins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return nil, ErrUserNotFound
			}
			return nil, ErrInsufficientFunds
		}
		return nil, err
	}

	newLevel, err := s.resources.RaiseProductionLevelTx(ctx, tx, userID, productID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &UpgradeResult{
		PreviousLevel: level,
		NewLevel:      newLevel,
		Cost:          cost,
		NewCoins:      newCoins,
	}, nil
}

// ListResources returns the user's balances with product details.
func (s *EconomyService) ListResources(ctx context.Context, userID int64) ([]*domain.ResourceDetails, error) {
	return s.resources.ListByUser(ctx, userID)
}

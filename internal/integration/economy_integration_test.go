package integration

import (
	"context"
	"errors"
	"testing"

	"farm_webapp/internal/repository"
	"farm_webapp/internal/service"
)

func TestCollectAndSellFlow(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_flow")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)

	// five collect clicks at production level 1
	var lastQty int64
	for i := 0; i < 5; i++ {
		res, err := econ.Collect(ctx, user.ID, trigo)
		if err != nil {
			t.Fatalf("collect %d: %v", i, err)
		}
		if res.Gained != 1 {
			t.Fatalf("expected gain 1, got %d", res.Gained)
		}
		lastQty = res.NewQuantity
	}
	if lastQty != 5 {
		t.Fatalf("expected quantity 5, got %d", lastQty)
	}

	// sell everything: trigo is worth 2 coins a unit
	sale, err := econ.Sell(ctx, user.ID, trigo, 5)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if sale.TotalValue != 10 {
		t.Fatalf("expected total 10, got %d", sale.TotalValue)
	}
	if sale.NewQuantity != 0 {
		t.Fatalf("expected quantity 0 after sale, got %d", sale.NewQuantity)
	}
	if sale.NewCoins != 10 {
		t.Fatalf("expected 10 coins, got %d", sale.NewCoins)
	}

	// the sale must land in the ledger
	total, err := repository.NewSaleRepository(dbp).TotalQuantity(ctx, user.ID)
	if err != nil {
		t.Fatalf("total quantity: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected lifetime sold 5, got %d", total)
	}
}

func TestSellInsufficientQuantity(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_oversell")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)

	if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
		t.Fatalf("collect: %v", err)
	}

	_, err := econ.Sell(ctx, user.ID, trigo, 5)
	if !errors.Is(err, service.ErrInsufficientResource) {
		t.Fatalf("expected ErrInsufficientResource, got %v", err)
	}

	// nothing must have been committed
	res, err := repository.NewResourceRepository(dbp).Get(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	if res.Quantity != 1 {
		t.Fatalf("expected quantity 1 untouched, got %d", res.Quantity)
	}
}

func TestSellUnknownProduct(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_unknown")
	econ := service.NewEconomyService(dbp)

	_, err := econ.Sell(ctx, user.ID, 9999999, 1)
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSellInvalidQuantity(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_badqty")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)

	if _, err := econ.Sell(ctx, user.ID, trigo, 0); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for 0, got %v", err)
	}
	if _, err := econ.Sell(ctx, user.ID, trigo, -3); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for -3, got %v", err)
	}
}

func TestUpgradeProduction(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_upgrade")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)
	users := repository.NewUserRepository(dbp)

	if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, err := users.AddCoins(ctx, user.ID, 100); err != nil {
		t.Fatalf("fund user: %v", err)
	}

	up, err := econ.UpgradeProduction(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if up.Cost != 50 {
		t.Fatalf("expected cost 50 at level 1, got %d", up.Cost)
	}
	if up.NewLevel != 2 {
		t.Fatalf("expected level 2, got %d", up.NewLevel)
	}
	if up.NewCoins != 50 {
		t.Fatalf("expected 50 coins left, got %d", up.NewCoins)
	}

	// next collect yields production_level units
	res, err := econ.Collect(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("collect after upgrade: %v", err)
	}
	if res.Gained != 2 {
		t.Fatalf("expected gain 2 after upgrade, got %d", res.Gained)
	}
}

func TestUpgradeInsufficientFunds(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_poor")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)

	if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
		t.Fatalf("collect: %v", err)
	}

	// fresh accounts start with zero coins
	_, err := econ.UpgradeProduction(ctx, user.ID, trigo)
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	res, err := repository.NewResourceRepository(dbp).Get(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("get resource: %v", err)
	}
	if res.ProductionLevel != 1 {
		t.Fatalf("expected level 1 untouched, got %d", res.ProductionLevel)
	}
}

func TestUpgradeMissingResource(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_noresource")
	ouro := productID(t, dbp, "ouro")
	econ := service.NewEconomyService(dbp)

	_, err := econ.UpgradeProduction(ctx, user.ID, ouro)
	if !errors.Is(err, service.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestSellAll(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "econ_sellall")
	trigo := productID(t, dbp, "trigo")
	madeira := productID(t, dbp, "madeira")
	econ := service.NewEconomyService(dbp)

	for i := 0; i < 3; i++ {
		if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
			t.Fatalf("collect trigo: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := econ.Collect(ctx, user.ID, madeira); err != nil {
			t.Fatalf("collect madeira: %v", err)
		}
	}

	// 3 trigo * 2 + 2 madeira * 3 = 12
	res, err := econ.SellAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("sell all: %v", err)
	}
	if res.TotalValue != 12 {
		t.Fatalf("expected total 12, got %d", res.TotalValue)
	}
	if res.ItemsSold != 2 {
		t.Fatalf("expected 2 items sold, got %d", res.ItemsSold)
	}
	if res.Skipped != 0 {
		t.Fatalf("expected 0 skipped, got %d", res.Skipped)
	}
}

package integration

import (
	"context"
	"testing"

	"farm_webapp/internal/domain"
	"farm_webapp/internal/repository"
	"farm_webapp/internal/service"
)

func containsAchievement(completed []domain.CompletedAchievement, name string) bool {
	for _, a := range completed {
		if a.Name == name {
			return true
		}
	}
	return false
}

func TestCollectAchievementGrantsOnce(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "ach_collect")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)
	ach := service.NewAchievementService(dbp)
	users := repository.NewUserRepository(dbp)

	// "Agricultor Iniciante": 10 trigo collected, +5 coins, +10 points
	for i := 0; i < 10; i++ {
		if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
			t.Fatalf("collect: %v", err)
		}
	}

	completed, err := ach.CheckCollect(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("check collect: %v", err)
	}
	if !containsAchievement(completed, "Agricultor Iniciante") {
		t.Fatalf("expected Agricultor Iniciante completed, got %v", completed)
	}

	u, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u.Coins != 5 {
		t.Fatalf("expected 5 reward coins, got %d", u.Coins)
	}
	if u.RankingPoints != 10 {
		t.Fatalf("expected 10 ranking points, got %d", u.RankingPoints)
	}

	// re-check: reward must not be granted twice
	completed, err = ach.CheckCollect(ctx, user.ID, trigo)
	if err != nil {
		t.Fatalf("re-check collect: %v", err)
	}
	if len(completed) != 0 {
		t.Fatalf("expected no newly completed achievements, got %v", completed)
	}

	u2, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u2.Coins != u.Coins || u2.RankingPoints != u.RankingPoints {
		t.Fatalf("rewards granted twice: coins %d->%d points %d->%d",
			u.Coins, u2.Coins, u.RankingPoints, u2.RankingPoints)
	}
}

func TestSalesAchievement(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "ach_sales")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)
	ach := service.NewAchievementService(dbp)

	for i := 0; i < 20; i++ {
		if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
			t.Fatalf("collect: %v", err)
		}
	}
	if _, err := econ.Sell(ctx, user.ID, trigo, 20); err != nil {
		t.Fatalf("sell: %v", err)
	}

	// "Comerciante Iniciante": 20 units sold lifetime
	completed, err := ach.CheckSales(ctx, user.ID)
	if err != nil {
		t.Fatalf("check sales: %v", err)
	}
	if !containsAchievement(completed, "Comerciante Iniciante") {
		t.Fatalf("expected Comerciante Iniciante completed, got %v", completed)
	}

	u, err := repository.NewUserRepository(dbp).GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	// 20 trigo * 2 from the sale + 10 reward coins
	if u.Coins != 50 {
		t.Fatalf("expected 50 coins, got %d", u.Coins)
	}
}

func TestLevelProgressionAndAchievement(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "ach_level")
	prog := service.NewProgressionService(dbp)
	ach := service.NewAchievementService(dbp)

	res, err := prog.AddExperience(ctx, user.ID, 100)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if !res.LeveledUp || res.Level != 2 {
		t.Fatalf("expected level-up to 2, got %+v", res)
	}
	if res.ExpNextLevel != 150 {
		t.Fatalf("expected next threshold 150, got %d", res.ExpNextLevel)
	}

	// thresholds 150+225+337 take the user to level 5
	res, err = prog.AddExperience(ctx, user.ID, 712)
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if res.Level != 5 {
		t.Fatalf("expected level 5, got %d", res.Level)
	}

	// "Novato": reach level 5
	completed, err := ach.CheckLevel(ctx, user.ID, res.Level)
	if err != nil {
		t.Fatalf("check level: %v", err)
	}
	if !containsAchievement(completed, "Novato") {
		t.Fatalf("expected Novato completed, got %v", completed)
	}
}

func TestEvaluateAllIdempotentForAbsoluteChecks(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "ach_evalall")
	trigo := productID(t, dbp, "trigo")
	econ := service.NewEconomyService(dbp)
	ach := service.NewAchievementService(dbp)

	for i := 0; i < 10; i++ {
		if _, err := econ.Collect(ctx, user.ID, trigo); err != nil {
			t.Fatalf("collect: %v", err)
		}
	}

	completed, err := ach.EvaluateAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("evaluate all: %v", err)
	}
	if !containsAchievement(completed, "Agricultor Iniciante") {
		t.Fatalf("expected Agricultor Iniciante completed, got %v", completed)
	}

	// unchanged quantity: the collect check must not complete anything again
	completed, err = ach.EvaluateAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("evaluate all again: %v", err)
	}
	if containsAchievement(completed, "Agricultor Iniciante") {
		t.Fatal("collect achievement completed twice")
	}
}

func TestAchievementListings(t *testing.T) {
	dbp := setupDB(t)
	ctx := context.Background()

	user := createUser(t, dbp, "ach_list")
	ach := service.NewAchievementService(dbp)

	catalog, err := ach.ListCatalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(catalog) < 15 {
		t.Fatalf("expected seeded catalog of at least 15, got %d", len(catalog))
	}

	mine, err := ach.ListForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(mine) != len(catalog) {
		t.Fatalf("user listing size %d != catalog size %d", len(mine), len(catalog))
	}
	for _, a := range mine {
		if a.Completed || a.Progress != 0 {
			t.Fatalf("fresh user has progress on %s: %+v", a.Name, a)
		}
	}
}

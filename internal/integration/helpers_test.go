package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farm_webapp/internal/domain"
	"farm_webapp/internal/repository"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	dbp, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(dbp.Close)

	applyMigrations(t, dbp)
	return dbp
}

func applyMigrations(t *testing.T, dbp *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := dbp.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

// createUser registers a throwaway account with a unique username.
func createUser(t *testing.T, dbp *pgxpool.Pool, prefix string) *domain.User {
	t.Helper()

	repo := repository.NewUserRepository(dbp)
	u := &domain.User{
		Username: fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()),
		Password: "not-a-real-hash",
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func productID(t *testing.T, dbp *pgxpool.Pool, name string) int64 {
	t.Helper()

	p, err := repository.NewProductRepository(dbp).GetByName(context.Background(), name)
	if err != nil {
		t.Fatalf("product %s: %v", name, err)
	}
	return p.ID
}

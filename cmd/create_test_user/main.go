package main

import (
	"context"
	"log"
	"os"

	"farm_webapp/internal/db"
	"farm_webapp/internal/repository"
	"farm_webapp/internal/service"

	"golang.org/x/crypto/bcrypt"
)

// Creates (or reuses) a local test account and prints a JWT for it.
func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	username := os.Getenv("TEST_USERNAME")
	if username == "" {
		username = "testuser"
	}
	password := os.Getenv("TEST_PASSWORD")
	if password == "" {
		password = "testpass"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetByUsername(ctx, username)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		auth := service.NewAuthService(repo)
		u, err = auth.Register(ctx, username, password)
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%d\n", u.ID)
	}

	// verify the password round-trips
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		log.Fatalf("password mismatch for existing user %s", username)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}

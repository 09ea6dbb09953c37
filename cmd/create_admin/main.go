package main

import (
	"context"
	"flag"
	"log"
	"os"

	"points_platform/internal/db"
	"points_platform/internal/domain"
	"points_platform/internal/repository"
	"points_platform/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	username := flag.String("username", "admin", "admin username")
	seed := flag.Float64("seed", 0, "points to credit the account with")
	flag.Parse()

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetByUsername(ctx, *username)
	if err == nil {
		log.Printf("user already exists id=%d\n", u.ID)
	} else {
		u = &domain.User{Username: *username, IsAdmin: true}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("admin created id=%d\n", u.ID)
	}

	if *seed > 0 {
		balance, _, err := repo.Credit(ctx, u.ID, *seed)
		if err != nil {
			log.Fatalf("seed balance failed: %v", err)
		}
		log.Printf("balance=%v\n", balance)
	}

	service.InitJWT(secret)
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-todo-auth/config"
	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
	pginfra "github.com/oksasatya/go-todo-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pginfra.Open(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := pginfra.NewUserRepository(db)
	todos := pginfra.NewTodoRepository(db)

	email := "demo@example.com"
	password := "password123"
	userName := "demoUser"

	u, err := users.GetByLogin(ctx, userName)
	switch {
	case err == nil:
		fmt.Printf("user already present: id=%s userName=%s\n", u.ID, u.UserName)
	case errors.Is(err, repository.ErrNotFound):
		hasher, herr := helpers.NewBcryptHasher(cfg.BcryptCost)
		if herr != nil {
			log.Fatalf("invalid bcrypt cost: %v", herr)
		}
		hash, herr := hasher.Hash(password)
		if herr != nil {
			log.Fatalf("failed to hash password: %v", herr)
		}
		u = &entity.User{
			FullName:     "Demo User",
			UserName:     userName,
			Email:        email,
			PhoneNumber:  "+10000000000",
			PasswordHash: hash,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		fmt.Printf("seeded user: id=%s email=%s userName=%s password=%s\n", u.ID, email, userName, password)
	default:
		log.Fatalf("failed to look up user: %v", err)
	}

	samples := []entity.Todo{
		{Title: "Read the API docs", Description: "Skim every route under /api/v1", Status: entity.TodoActive},
		{Title: "Try the password reset", Description: "Use the forgot password flow", Status: entity.TodoActive},
		{Title: "Sign up", Description: "Create the demo account", Status: entity.TodoDone},
	}
	for i := range samples {
		t := samples[i]
		t.OwnerID = u.ID
		err := todos.Create(ctx, &t)
		var dup *repository.DuplicateError
		switch {
		case err == nil:
			fmt.Printf("seeded todo: %q (%s)\n", t.Title, t.Status)
		case errors.As(err, &dup):
			fmt.Printf("todo already present: %q\n", t.Title)
		default:
			log.Fatalf("failed to seed todo %q: %v", t.Title, err)
		}
	}
}

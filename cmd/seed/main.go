package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/ymgta/go-todo-clean-architecture/config"
	"github.com/ymgta/go-todo-clean-architecture/internal/domain/entity"
	pginfra "github.com/ymgta/go-todo-clean-architecture/internal/infrastructure/postgres"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	todos := pginfra.NewTodoRepository(pool)

	username := "admin"
	password := "password123"

	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		log.Fatalf("failed to look up admin user: %v", err)
	}
	if existing == nil {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		u, err := entity.NewUser(username, "admin@example.com", "Taro", "タロウ", "Yamada", "ヤマダ", hash, entity.RoleAdmin)
		if err != nil {
			log.Fatalf("failed to build admin user: %v", err)
		}
		existing, err = users.Save(ctx, u)
		if err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", existing.ID(), existing.Username(), password)

	sampleTitle := "Buy milk"
	found, err := todos.SearchByTitle(ctx, existing.ID(), sampleTitle)
	if err != nil {
		log.Fatalf("failed to look up sample todo: %v", err)
	}
	if len(found) > 0 {
		fmt.Printf("sample todo already present: id=%s title=%q\n", found[0].ID(), found[0].Title())
		return
	}

	sample, err := entity.NewTodo(sampleTitle, "2 liters, low fat", existing.ID())
	if err != nil {
		log.Fatalf("failed to build sample todo: %v", err)
	}
	saved, err := todos.Save(ctx, sample)
	if err != nil {
		log.Fatalf("failed to seed sample todo: %v", err)
	}
	fmt.Printf("seeded todo: id=%s title=%q\n", saved.ID(), saved.Title())
}

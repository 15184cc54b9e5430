// Seeds a demo account with a sample list for local development.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/taskflow/taskflow-api/config"
	"github.com/taskflow/taskflow-api/internal/application"
	"github.com/taskflow/taskflow-api/internal/domain/repository"
	pginfra "github.com/taskflow/taskflow-api/internal/infrastructure/postgres"
	"github.com/taskflow/taskflow-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	lists := pginfra.NewListRepository(pool)

	userSvc := application.NewService(users, nil, nil, "", logger)
	listSvc := application.NewListService(lists, logger)

	const demoEmail = "demo@taskflow.local"
	if _, err := users.GetByEmail(ctx, demoEmail); err == nil {
		logger.Info("demo user already present, nothing to do")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("lookup demo user: %v", err)
	}

	u, err := userSvc.Register(ctx, demoEmail, "Demo User", "demopassword")
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	_, err = listSvc.Create(ctx, u.ID, application.CreateListInput{
		Title: "Groceries",
		Tasks: []application.TaskInput{
			{Text: "Milk"},
			{Text: "Bread", Done: true},
			{Text: "Coffee"},
		},
	})
	if err != nil {
		log.Fatalf("seed list: %v", err)
	}

	logger.WithField("user_id", u.ID).Info("seeded demo user and sample list")
}

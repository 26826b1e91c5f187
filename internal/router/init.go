package router

import (
	"github.com/ymgta/go-todo-clean-architecture/internal/application"
	"github.com/ymgta/go-todo-clean-architecture/internal/container"
	pginfra "github.com/ymgta/go-todo-clean-architecture/internal/infrastructure/postgres"
	handlers "github.com/ymgta/go-todo-clean-architecture/internal/interface/http"
	"github.com/ymgta/go-todo-clean-architecture/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	todoRepo := pginfra.NewTodoRepository(container.GetPGPool())

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), container.GetRedis(), logger, cfg.RefreshTTL)
	userSvc := application.NewUserService(userRepo, logger)
	todoSvc := application.NewTodoService(
		todoRepo,
		userRepo,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESTodosIndex,
		container.GetRabbitPub(),
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(userSvc, logger)
	todoHandler := handlers.NewTodoHandler(todoSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewTodoModule(todoHandler, container.GetJWT()))
}

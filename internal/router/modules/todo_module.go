package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/go-todo-clean-architecture/internal/container"
	handlers "github.com/ymgta/go-todo-clean-architecture/internal/interface/http"
	"github.com/ymgta/go-todo-clean-architecture/internal/interface/middleware"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

// TodoModule wires todo CRUD and query routes. Everything is protected;
// the auth middleware resolves the owner id from the access token.
type TodoModule struct {
	Handler *handlers.TodoHandler
	JWT     *helpers.JWTManager
}

func NewTodoModule(h *handlers.TodoHandler, jwt *helpers.JWTManager) *TodoModule {
	return &TodoModule{Handler: h, JWT: jwt}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/todos")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/stats", m.Handler.Stats)
		auth.GET("/:id", m.Handler.Get)
		auth.PUT("/:id", m.Handler.Update)
		auth.PUT("/:id/complete", m.Handler.Complete)
		auth.PUT("/:id/incomplete", m.Handler.Incomplete)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ymgta/go-todo-clean-architecture/internal/container"
	handlers "github.com/ymgta/go-todo-clean-architecture/internal/interface/http"
	"github.com/ymgta/go-todo-clean-architecture/internal/interface/middleware"
	"github.com/ymgta/go-todo-clean-architecture/pkg/helpers"
)

// UserModule wires registration and user management routes.
// Public: POST /api/register
// Protected: GET/PUT /api/profile, PUT /api/profile/password,
// PUT /api/profile/password/init, GET /api/users,
// PUT /api/users/:id/role, DELETE /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile/password", m.Handler.ChangePassword)
		auth.PUT("/profile/password/init", m.Handler.InitializePassword)
		auth.GET("/users", m.Handler.List)
		auth.PUT("/users/:id/role", m.Handler.ChangeRole)
		auth.DELETE("/users/:id", m.Handler.Delete)
	}
}

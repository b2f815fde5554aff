package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-auth/internal/container"
	handlers "github.com/oksasatya/go-todo-auth/internal/interface/http"
	"github.com/oksasatya/go-todo-auth/internal/interface/middleware"
)

// UserModule wires account routes under /api/v1/users.
// Public: POST /users
// Protected: GET /users, GET /users/search, GET /users/:id, PATCH /users/updateUser, DELETE /users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Authz   middleware.Authorizer
}

func NewUserModule(h *handlers.UserHandler, authz middleware.Authorizer) *UserModule {
	return &UserModule{Handler: h, Authz: authz}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/v1/users")
	users.POST("", signupLimiter, m.Handler.Register)

	auth := rg.Group("/v1/users")
	auth.Use(middleware.Auth(m.Authz))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("", m.Handler.List)
		// Search users via Elasticsearch
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.PATCH("/updateUser", m.Handler.Update)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}

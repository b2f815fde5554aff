package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-auth/internal/container"
	handlers "github.com/oksasatya/go-todo-auth/internal/interface/http"
	"github.com/oksasatya/go-todo-auth/internal/interface/middleware"
)

// TodoModule wires the caller's todos under /api/v1/todos. Every route is protected.
type TodoModule struct {
	Handler *handlers.TodoHandler
	Authz   middleware.Authorizer
}

func NewTodoModule(h *handlers.TodoHandler, authz middleware.Authorizer) *TodoModule {
	return &TodoModule{Handler: h, Authz: authz}
}

func (m *TodoModule) Register(rg *gin.RouterGroup) {
	todos := rg.Group("/v1/todos")
	todos.Use(
		middleware.Auth(m.Authz),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		todos.GET("", m.Handler.List)
		todos.POST("", m.Handler.Create)
		todos.DELETE("", m.Handler.DeleteAll)
		todos.GET("/activeTodos", m.Handler.ListActive)
		todos.GET("/doneTodos", m.Handler.ListDone)
		todos.GET("/:id", m.Handler.Get)
		todos.PATCH("/:id", m.Handler.Update)
		todos.DELETE("/:id", m.Handler.Delete)
		todos.POST("/completeTodo/:id", m.Handler.Complete)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-auth/internal/container"
	handlers "github.com/oksasatya/go-todo-auth/internal/interface/http"
	"github.com/oksasatya/go-todo-auth/internal/interface/middleware"
)

// AuthModule serves login and the password lifecycle under /api/v1/users.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Authz   middleware.Authorizer
}

func NewAuthModule(h *handlers.AuthHandler, authz middleware.Authorizer) *AuthModule {
	return &AuthModule{Handler: h, Authz: authz}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	// Public endpoints with IP-based rate limits
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	forgotLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	users := rg.Group("/v1/users")
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/forgotpassword", forgotLimiter, m.Handler.ForgotPassword)
	users.PATCH("/resetpassword/:resetToken", resetLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/v1/users")
	auth.Use(middleware.Auth(m.Authz))
	auth.Use(middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PATCH("/updatepassword", m.Handler.ChangePassword)
	}
}

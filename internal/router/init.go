package router

import (
	"github.com/oksasatya/go-todo-auth/internal/application"
	"github.com/oksasatya/go-todo-auth/internal/container"
	handlers "github.com/oksasatya/go-todo-auth/internal/interface/http"
	"github.com/oksasatya/go-todo-auth/internal/router/modules"
)

func buildUserService() *application.Service {
	cfg := container.GetConfig()
	svc := application.NewService(
		container.GetUserRepo(),
		container.GetHasher(),
		container.GetJWT(),
		container.GetResetTokens(),
		container.GetMailSender(),
		container.GetLogger(),
	)
	svc.ES = container.GetES()
	if cfg != nil {
		svc.ESUsersIndex = cfg.ESUsersIndex
		svc.AppName = cfg.AppName
		svc.SenderName = cfg.MailFromName
		svc.PublicBaseURL = cfg.PublicBaseURL
	}
	return svc
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	logger := container.GetLogger()
	users := buildUserService()
	todos := application.NewTodoService(container.GetTodoRepo(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(users, logger), users))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(users, logger), users))
	r.Add(modules.NewTodoModule(handlers.NewTodoHandler(todos, logger), users))

	if cfg := container.GetConfig(); cfg == nil || cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
)

// Context keys set by Auth.
const (
	CtxUserIDKey   = "userID"
	CtxUserNameKey = "userName"
	CtxUserKey     = "user"
)

const bearerPrefix = "Bearer "

// Authorizer resolves a bearer token to its user. It is implemented by application.Service.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*entity.User, *helpers.Claims, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "" for anything else.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(h[len(bearerPrefix):])
}

// Auth guards a route with a session token. On success it sets userID, userName and user in the Gin context;
// otherwise the failure is handed to ErrorHandler and the chain is aborted.
func Auth(authz Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, _, err := authz.Authorize(c.Request.Context(), BearerToken(c))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, u.ID)
		c.Set(CtxUserNameKey, u.UserName)
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}

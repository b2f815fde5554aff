package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/internal/application"
	"github.com/oksasatya/go-todo-auth/internal/interface/middleware"
	"github.com/oksasatya/go-todo-auth/pkg/response"
)

// AuthHandler serves login and the password lifecycle.
type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	LoginInfo string `json:"loginInfo" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

type forgotPasswordRequest struct {
	LoginInfo string `json:"loginInfo" binding:"required"`
}

type resetPasswordRequest struct {
	Password        string `json:"password" binding:"required,pwd"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
}

func sessionResponse(c *gin.Context, sess *application.Session, message string) {
	response.Success(c, http.StatusOK, gin.H{"user": sess.User, "token": sess.Token}, message, gin.H{"expires_at": sess.ExpiresAt})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.LoginInfo, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	sessionResponse(c, sess, "Successfully logged in")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Svc.ChangePassword(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.CurrentPassword, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	sessionResponse(c, sess, "Password successfully updated")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.Svc.ForgotPassword(c.Request.Context(), application.ForgotPasswordInput{
		Login:     req.LoginInfo,
		Origin:    requestOrigin(c),
		IP:        middleware.ClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Email successfully sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("resetToken"), req.Password); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password resetted successfully.", nil)
}

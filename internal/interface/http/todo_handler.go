package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/internal/application"
	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/interface/middleware"
	"github.com/oksasatya/go-todo-auth/pkg/response"
)

type TodoHandler struct {
	Svc    *application.TodoService
	Logger *logrus.Logger
}

func NewTodoHandler(svc *application.TodoService, logger *logrus.Logger) *TodoHandler {
	return &TodoHandler{Svc: svc, Logger: logger}
}

type createTodoRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"required,min=10,max=255"`
	Date        string `json:"date"`
}

// updateTodoRequest lists author and status only to reject them.
type updateTodoRequest struct {
	Title       string  `json:"title" binding:"omitempty,min=2,max=255"`
	Description string  `json:"description" binding:"omitempty,min=10,max=255"`
	Date        string  `json:"date"`
	Author      *string `json:"author"`
	OwnerID     *string `json:"ownerId"`
	Status      *string `json:"status" binding:"omitempty,todostatus"`
}

type deleteAllRequest struct {
	Confirmation string `json:"confirmation"`
}

func owner(c *gin.Context) string { return c.GetString(middleware.CtxUserIDKey) }

func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if !bindJSON(c, &req) {
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), owner(c), application.TodoInput{Title: req.Title, Description: req.Description, Date: date})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"todo": t}, "New todo successfully created", nil)
}

func (h *TodoHandler) list(c *gin.Context, fn func(*application.TodoService) ([]*entity.Todo, error)) {
	todos, err := fn(h.Svc)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todos": todos}, "", gin.H{"results": len(todos)})
}

func (h *TodoHandler) List(c *gin.Context) {
	h.list(c, func(s *application.TodoService) ([]*entity.Todo, error) { return s.List(c.Request.Context(), owner(c)) })
}

func (h *TodoHandler) ListActive(c *gin.Context) {
	h.list(c, func(s *application.TodoService) ([]*entity.Todo, error) { return s.ListActive(c.Request.Context(), owner(c)) })
}

func (h *TodoHandler) ListDone(c *gin.Context) {
	h.list(c, func(s *application.TodoService) ([]*entity.Todo, error) { return s.ListDone(c.Request.Context(), owner(c)) })
}

func (h *TodoHandler) Get(c *gin.Context) {
	t, err := h.Svc.Get(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todo": t}, "", nil)
}

func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Author != nil || req.OwnerID != nil {
		fail(c, rejectField("author", "You can not update author"))
		return
	}
	if req.Status != nil {
		fail(c, rejectField("status", "Use the complete todo feature to change the status"))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		fail(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), owner(c), c.Param("id"), application.TodoInput{Title: req.Title, Description: req.Description, Date: date})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todo": t}, "Todo successfully updated", nil)
}

func (h *TodoHandler) Complete(c *gin.Context) {
	t, err := h.Svc.Complete(c.Request.Context(), owner(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"todo": t}, "Todo successfully completed", nil)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), owner(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Todo successfully deleted", nil)
}

func (h *TodoHandler) DeleteAll(c *gin.Context) {
	var req deleteAllRequest
	if !bindJSON(c, &req) {
		return
	}
	n, err := h.Svc.DeleteAll(c.Request.Context(), owner(c), req.Confirmation)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "All todos are successfully deleted", gin.H{"deleted": n})
}

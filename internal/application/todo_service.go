package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-auth/internal/domain/repository"
	"github.com/oksasatya/go-todo-auth/pkg/apperror"
)

const deleteAllConfirmation = "yes"

var (
	errTodoNotFound      = apperror.New(apperror.KindNotFound, "No todo found with that ID")
	errMissingConfirm    = apperror.New(apperror.KindValidation, "Fill confirmation field")
	errDeletionCancelled = apperror.New(apperror.KindValidation, "Deletion of todos is cancelled.")
)

// TodoService manages todos of the authenticated user. Every operation is scoped to ownerID.
type TodoService struct {
	Repo   repo.TodoRepository
	Logger *logrus.Logger
}

func NewTodoService(repo repo.TodoRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: repo, Logger: logger}
}

type TodoInput struct {
	Title       string
	Description string
	Date        *time.Time
}

// Create adds an active todo for ownerID.
func (s *TodoService) Create(ctx context.Context, ownerID string, in TodoInput) (*entity.Todo, error) {
	t := &entity.Todo{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Status:      entity.TodoActive,
		Date:        in.Date,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, storeError(err, nil)
	}
	return t, nil
}

// List returns the owner's todos, newest first.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return s.list(ctx, repo.TodoFilter{OwnerID: ownerID})
}

func (s *TodoService) ListActive(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return s.list(ctx, repo.TodoFilter{OwnerID: ownerID, Status: entity.TodoActive})
}

func (s *TodoService) ListDone(ctx context.Context, ownerID string) ([]*entity.Todo, error) {
	return s.list(ctx, repo.TodoFilter{OwnerID: ownerID, Status: entity.TodoDone})
}

func (s *TodoService) list(ctx context.Context, f repo.TodoFilter) ([]*entity.Todo, error) {
	todos, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return todos, nil
}

// Get returns the todo if ownerID owns it.
func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	t, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, errTodoNotFound)
	}
	if t.OwnerID != ownerID {
		return nil, errForbidden
	}
	return t, nil
}

// Update applies the non-empty fields of in.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, in TodoInput) (*entity.Todo, error) {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.Title); v != "" {
		t.Title = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		t.Description = v
	}
	if in.Date != nil {
		t.Date = in.Date
	}
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, storeError(err, errTodoNotFound)
	}
	return t, nil
}

// Complete marks the todo done. Completing a done todo is a no-op.
func (s *TodoService) Complete(ctx context.Context, ownerID, id string) (*entity.Todo, error) {
	t, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if t.Status == entity.TodoDone {
		return t, nil
	}
	t.Status = entity.TodoDone
	if err := s.Repo.Update(ctx, t); err != nil {
		return nil, storeError(err, errTodoNotFound)
	}
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return storeError(s.Repo.Delete(ctx, id), errTodoNotFound)
}

// DeleteAll removes every todo of ownerID once confirmation is "yes".
func (s *TodoService) DeleteAll(ctx context.Context, ownerID, confirmation string) (int64, error) {
	switch confirmation {
	case "":
		return 0, errMissingConfirm
	case deleteAllConfirmation:
	default:
		return 0, errDeletionCancelled
	}
	n, err := s.Repo.DeleteByOwner(ctx, ownerID)
	if err != nil {
		return 0, storeError(err, nil)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": ownerID, "deleted": n}).Info("todos cleared")
	}
	return n, nil
}

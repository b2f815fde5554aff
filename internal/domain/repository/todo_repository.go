package repository

import (
	"context"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
)

// TodoFilter narrows List results; an empty Status means any status.
type TodoFilter struct {
	OwnerID string
	Status  entity.TodoStatus
}

// TodoRepository stores todos. Lists are ordered newest first.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	GetByID(ctx context.Context, id string) (*entity.Todo, error)
	List(ctx context.Context, f TodoFilter) ([]*entity.Todo, error)
	Update(ctx context.Context, t *entity.Todo) error
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

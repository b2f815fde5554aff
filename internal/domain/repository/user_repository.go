package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
	// ErrInvalidID means an id was not in the store's id format.
	ErrInvalidID = errors.New("invalid id")
)

// DuplicateError reports a uniqueness violation on Field. It matches ErrDuplicate with errors.Is.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return fmt.Sprintf("duplicate %s", e.Field) }

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// UserRepository defines the interface for user-related storage operations.
// Every method touches a single user row.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByLogin finds a user whose email, user name or phone number equals login.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	GetByResetTokenHash(ctx context.Context, hash string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	// Update writes every mutable column of u, including password and reset fields.
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

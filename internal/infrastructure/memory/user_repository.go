package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
)

// UserRepository keeps users in process memory. Stored values are copied in and out,
// so callers never share pointers with the store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	order []string // insertion order
	now   func() time.Time

	// onDelete is called with the user id after a delete; used to cascade todos.
	onDelete func(id string)
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]*entity.User{}, now: time.Now}
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	if u.PasswordChangedAt != nil {
		t := *u.PasswordChangedAt
		cp.PasswordChangedAt = &t
	}
	if u.PasswordResetTokenHash != nil {
		h := *u.PasswordResetTokenHash
		cp.PasswordResetTokenHash = &h
	}
	if u.PasswordResetExpiresAt != nil {
		t := *u.PasswordResetExpiresAt
		cp.PasswordResetExpiresAt = &t
	}
	return &cp
}

// conflict returns the first unique field of u already used by another user.
func (r *UserRepository) conflict(u *entity.User) error {
	for id, other := range r.users {
		if id == u.ID {
			continue
		}
		switch {
		case other.UserName == u.UserName:
			return &repository.DuplicateError{Field: "userName"}
		case strings.EqualFold(other.Email, u.Email):
			return &repository.DuplicateError{Field: "email"}
		case other.PhoneNumber == u.PhoneNumber:
			return &repository.DuplicateError{Field: "phoneNumber"}
		}
	}
	return nil
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conflict(u); err != nil {
		return err
	}
	u.ID = uuid.NewString()
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = cloneUser(u)
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		u := r.users[id]
		if strings.EqualFold(u.Email, login) || u.UserName == login || u.PhoneNumber == login {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByResetTokenHash(_ context.Context, hash string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.PasswordResetTokenHash != nil && *u.PasswordResetTokenHash == hash {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.conflict(u); err != nil {
		return err
	}
	u.UpdatedAt = r.now()
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return repository.ErrNotFound
	}
	delete(r.users, id)
	r.order = without(r.order, func(v string) bool { return v == id })
	r.mu.Unlock()
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)

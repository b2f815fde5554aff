package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
)

type TodoRepository struct {
	mu    sync.RWMutex
	todos map[string]*entity.Todo
	order []string // insertion order
	now   func() time.Time
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: map[string]*entity.Todo{}, now: time.Now}
}

// NewStore returns linked user and todo repositories; deleting a user deletes their todos.
func NewStore() (*UserRepository, *TodoRepository) {
	users := NewUserRepository()
	todos := NewTodoRepository()
	users.onDelete = func(id string) { _, _ = todos.DeleteByOwner(context.Background(), id) }
	return users, todos
}

func cloneTodo(t *entity.Todo) *entity.Todo {
	cp := *t
	if t.Date != nil {
		d := *t.Date
		cp.Date = &d
	}
	return &cp
}

func (r *TodoRepository) titleTaken(t *entity.Todo) bool {
	for id, other := range r.todos {
		if id != t.ID && other.OwnerID == t.OwnerID && other.Title == t.Title {
			return true
		}
	}
	return false
}

func (r *TodoRepository) Create(_ context.Context, t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.titleTaken(t) {
		return &repository.DuplicateError{Field: "title"}
	}
	t.ID = uuid.NewString()
	now := r.now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.todos[t.ID] = cloneTodo(t)
	r.order = append(r.order, t.ID)
	return nil
}

func (r *TodoRepository) GetByID(_ context.Context, id string) (*entity.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTodo(t), nil
}

func (r *TodoRepository) List(_ context.Context, f repository.TodoFilter) ([]*entity.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*entity.Todo{}
	for i := len(r.order) - 1; i >= 0; i-- {
		t := r.todos[r.order[i]]
		if f.OwnerID != "" && t.OwnerID != f.OwnerID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, cloneTodo(t))
	}
	return out, nil
}

func (r *TodoRepository) Update(_ context.Context, t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[t.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.titleTaken(t) {
		return &repository.DuplicateError{Field: "title"}
	}
	t.UpdatedAt = r.now()
	r.todos[t.ID] = cloneTodo(t)
	return nil
}

func (r *TodoRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	r.order = without(r.order, func(v string) bool { return v == id })
	return nil
}

func (r *TodoRepository) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	r.order = without(r.order, func(id string) bool {
		if r.todos[id].OwnerID != ownerID {
			return false
		}
		delete(r.todos, id)
		n++
		return true
	})
	return n, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

// without returns ids minus those drop reports true for, reusing the backing array.
func without(ids []string, drop func(string) bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if !drop(id) {
			out = append(out, id)
		}
	}
	return out
}

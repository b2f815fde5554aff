package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
)

const todoColumns = `id, owner_id, title, description, status, date, created_at, updated_at`

type TodoRepository struct {
	db DBTX
}

func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func scanTodo(s scanner) (*entity.Todo, error) {
	t := &entity.Todo{}
	if err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Status, &t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO todos (owner_id, title, description, status, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, t.OwnerID, t.Title, t.Description, string(t.Status), t.Date)

	return mapError(row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt))
}

func (r *TodoRepository) GetByID(ctx context.Context, id string) (*entity.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *TodoRepository) List(ctx context.Context, f repository.TodoFilter) ([]*entity.Todo, error) {
	var (
		conds []string
		args  []any
	)
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, "owner_id = $"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	q := `SELECT ` + todoColumns + ` FROM todos`
	if len(conds) > 0 {
		q += ` WHERE ` + strings.Join(conds, " AND ")
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	todos := []*entity.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, mapError(err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return todos, nil
}

func (r *TodoRepository) Update(ctx context.Context, t *entity.Todo) error {
	row := r.db.QueryRowContext(ctx, `
		UPDATE todos
		SET title = $1, description = $2, status = $3, date = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, t.Title, t.Description, string(t.Status), t.Date, t.ID)

	return mapError(row.Scan(&t.UpdatedAt))
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

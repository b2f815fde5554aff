package postgres

import (
	"context"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
)

const userColumns = `id, full_name, user_name, email, phone_number, password_hash,
		password_changed_at, password_reset_token_hash, password_reset_expires_at,
		created_at, updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*entity.User, error) {
	u := &entity.User{}
	err := s.Scan(&u.ID, &u.FullName, &u.UserName, &u.Email, &u.PhoneNumber, &u.PasswordHash,
		&u.PasswordChangedAt, &u.PasswordResetTokenHash, &u.PasswordResetExpiresAt,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (full_name, user_name, email, phone_number, password_hash, password_changed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.FullName, u.UserName, u.Email, u.PhoneNumber, u.PasswordHash, u.PasswordChangedAt)

	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `id = $1`, id)
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	return r.getOne(ctx, `lower(email) = lower($1) OR user_name = $1 OR phone_number = $1 LIMIT 1`, login)
}

func (r *UserRepository) GetByResetTokenHash(ctx context.Context, hash string) (*entity.User, error) {
	return r.getOne(ctx, `password_reset_token_hash = $1`, hash)
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	users := []*entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET full_name = $1, user_name = $2, email = $3, phone_number = $4, password_hash = $5,
			password_changed_at = $6, password_reset_token_hash = $7, password_reset_expires_at = $8,
			updated_at = now()
		WHERE id = $9
		RETURNING updated_at
	`, u.FullName, u.UserName, u.Email, u.PhoneNumber, u.PasswordHash,
		u.PasswordChangedAt, u.PasswordResetTokenHash, u.PasswordResetExpiresAt, u.ID)

	return mapError(row.Scan(&u.UpdatedAt))
}

// Delete removes the user; their todos go with them through the foreign key.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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

var _ repository.UserRepository = (*UserRepository)(nil)

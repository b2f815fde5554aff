package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
)

// Authorize resolves a bearer token to its user. An empty token means no credentials were presented.
// It never mutates the user.
func (s *Service) Authorize(ctx context.Context, token string) (*entity.User, *helpers.Claims, error) {
	if token == "" {
		return nil, nil, errMissingToken
	}
	claims, err := s.JWT.ParseAccessToken(token)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return nil, nil, errTokenExpired
		}
		return nil, nil, errTokenInvalid
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, storeError(err, errUserGone.WithStatus(http.StatusUnauthorized))
	}
	if u.ChangedPasswordAfter(claims.IssuedAtTime()) {
		return nil, nil, errStale
	}
	return u, claims, nil
}

package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	repo "github.com/oksasatya/go-todo-auth/internal/domain/repository"
	"github.com/oksasatya/go-todo-auth/pkg/apperror"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
	"github.com/oksasatya/go-todo-auth/pkg/mailer"
)

// PasswordHasher is implemented by helpers.BcryptHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Service owns accounts and their credentials.
type Service struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	JWT    *helpers.JWTManager
	Reset  *helpers.ResetTokenGenerator
	Mailer mailer.Sender
	Logger *logrus.Logger

	ES           *elasticsearch.Client
	ESUsersIndex string

	AppName    string
	SenderName string
	// PublicBaseURL overrides the request origin in emailed links when set.
	PublicBaseURL string

	Now func() time.Time
}

func NewService(repo repo.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, reset *helpers.ResetTokenGenerator, sender mailer.Sender, logger *logrus.Logger) *Service {
	return &Service{
		Repo:   repo,
		Hasher: hasher,
		JWT:    jwt,
		Reset:  reset,
		Mailer: sender,
		Logger: logger,
		Now:    time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type RegisterInput struct {
	FullName    string
	UserName    string
	Email       string
	PhoneNumber string
	Password    string
}

// Session is the result of a successful login or password change.
type Session struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Register creates an account. No session is issued; the caller logs in afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, hashError(err)
	}
	u := &entity.User{
		FullName:     strings.TrimSpace(in.FullName),
		UserName:     strings.TrimSpace(in.UserName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeError(err, nil)
	}
	s.indexUser(ctx, u)
	return u, nil
}

// Login checks credentials against a user found by email, user name or phone number.
// Unknown login and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, login, password string) (*Session, error) {
	u, err := s.Repo.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		metricFailedLogins.Add(1)
		return nil, storeError(err, errInvalidCredentials)
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		metricFailedLogins.Add(1)
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Debug("login rejected: password mismatch")
		}
		return nil, errInvalidCredentials
	}
	sess, err := s.issueSession(u)
	if err != nil {
		return nil, err
	}
	metricLogins.Add(1)
	return sess, nil
}

func (s *Service) issueSession(u *entity.User) (*Session, error) {
	token, exp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, apperror.Internal(err)
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, apperror.New(apperror.KindNotFound, "No user found with that ID"))
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeError(err, nil)
	}
	return users, nil
}

// UpdateUserInput carries personal data changes; empty fields are left untouched.
type UpdateUserInput struct {
	FullName    string
	Email       string
	PhoneNumber string
}

func (s *Service) UpdateUser(ctx context.Context, userID string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(in.FullName); v != "" {
		u.FullName = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		u.Email = strings.ToLower(v)
	}
	if v := strings.TrimSpace(in.PhoneNumber); v != "" {
		u.PhoneNumber = v
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err, errUserGone)
	}
	s.indexUser(ctx, u)
	return u, nil
}

// DeleteUser removes the caller's own account together with their todos.
func (s *Service) DeleteUser(ctx context.Context, callerID, id string) error {
	if callerID != id {
		return errForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return storeError(err, apperror.New(apperror.KindNotFound, "No user found with that ID"))
	}
	s.unindexUser(ctx, id)
	return nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"full_name":  u.FullName,
		"user_name":  u.UserName,
		"email":      u.Email,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *Service) unindexUser(ctx context.Context, id string) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id}.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchHit is a user document returned by the search index.
type SearchHit struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// SearchUsers performs a multi_match search on user name, full name and email.
// Without a search client it returns no hits.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]SearchHit, error) {
	if s.ES == nil || s.ESUsersIndex == "" || strings.TrimSpace(q) == "" {
		return []SearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"user_name^2", "full_name", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).Warn("es search response error")
		}
		return []SearchHit{}, nil
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string `json:"_id"`
				Source struct {
					FullName string `json:"full_name"`
					UserName string `json:"user_name"`
					Email    string `json:"email"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperror.Internal(err)
	}

	out := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, SearchHit{ID: h.ID, FullName: h.Source.FullName, UserName: h.Source.UserName, Email: h.Source.Email})
	}
	return out, nil
}

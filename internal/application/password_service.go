package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/internal/domain/entity"
	"github.com/oksasatya/go-todo-auth/pkg/apperror"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
	"github.com/oksasatya/go-todo-auth/pkg/mailer"
	mailtpl "github.com/oksasatya/go-todo-auth/pkg/mailer/templates"
)

// ResetLinkPath is the public route that consumes a reset token.
const ResetLinkPath = "/api/v1/users/resetpassword/"

// setPassword hashes plain into u and stamps the change time.
func (s *Service) setPassword(u *entity.User, plain string) error {
	hash, err := s.Hasher.Hash(plain)
	if err != nil {
		return hashError(err)
	}
	now := s.now()
	u.PasswordHash = hash
	u.PasswordChangedAt = &now
	return nil
}

// ChangePassword replaces the password of an authenticated user and returns a fresh session,
// since every token issued before the change is now stale.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) (*Session, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, errUserGone)
	}
	if !s.Hasher.Verify(current, u.PasswordHash) {
		return nil, errWrongPassword
	}
	if err := s.setPassword(u, next); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err, errUserGone)
	}
	helpers.LogInfo(s.Logger, "password changed", logrus.Fields{"user_id": u.ID})
	return s.issueSession(u)
}

type ForgotPasswordInput struct {
	Login string
	// Origin is scheme://host of the incoming request, used when PublicBaseURL is empty.
	Origin    string
	IP        string
	UserAgent string
}

// ForgotPassword issues a reset token and emails the reset link.
// If the email cannot be handed over the stored token is withdrawn.
func (s *Service) ForgotPassword(ctx context.Context, in ForgotPasswordInput) error {
	u, err := s.Repo.GetByLogin(ctx, strings.TrimSpace(in.Login))
	if err != nil {
		return storeError(err, errNoSuchLogin)
	}

	plain, hash, exp, err := s.Reset.Issue()
	if err != nil {
		return apperror.Internal(err)
	}
	u.SetPasswordReset(hash, exp)
	if err := s.Repo.Update(ctx, u); err != nil {
		return storeError(err, errNoSuchLogin)
	}
	metricResetRequests.Add(1)

	origin := s.PublicBaseURL
	if origin == "" {
		origin = strings.TrimRight(in.Origin, "/")
	}
	data := mailtpl.NewResetPasswordData(s.AppName, u.FullName, u.Email,
		mailtpl.WithResetURL(origin+ResetLinkPath+plain),
		mailtpl.WithExpiry(exp.Add(-helpers.ResetTokenLifetime), exp),
		mailtpl.WithSenderName(s.SenderName),
		mailtpl.WithIP(in.IP),
		mailtpl.WithUserAgent(in.UserAgent),
		mailtpl.WithTime(s.now()),
	)

	sendErr := s.sendTemplate(ctx, u.Email, mailtpl.ResetPassword, data)
	if sendErr == nil {
		helpers.LogInfo(s.Logger, "password reset email sent", logrus.Fields{"user_id": u.ID})
		return nil
	}

	helpers.LogError(s.Logger, "password reset email failed", sendErr, logrus.Fields{"user_id": u.ID})
	u.ClearPasswordReset()
	if err := s.Repo.Update(ctx, u); err != nil {
		helpers.LogError(s.Logger, "withdraw reset token failed", err, logrus.Fields{"user_id": u.ID})
		return apperror.Internal(err)
	}
	return apperror.Wrap(errDeliveryFailed.Kind, errDeliveryFailed.Message, sendErr)
}

func (s *Service) sendTemplate(ctx context.Context, to, name string, data mailtpl.EmailData) error {
	subject, text, html, err := mailtpl.Render(name, data)
	if err != nil {
		return err
	}
	if s.Mailer == nil {
		return errors.New("mailer not configured")
	}
	return s.Mailer.Send(ctx, mailer.Message{To: to, Subject: subject, Text: text, HTML: html})
}

// ResetPassword consumes a reset token. The token stays usable until its expiry instant inclusive
// and is cleared together with the password change, so it cannot be replayed.
func (s *Service) ResetPassword(ctx context.Context, plain, password string) (*entity.User, error) {
	u, err := s.Repo.GetByResetTokenHash(ctx, helpers.HashResetToken(plain))
	if err != nil {
		return nil, storeError(err, errInvalidResetToken)
	}
	if !u.HasPasswordReset() || !s.Reset.Match(plain, *u.PasswordResetTokenHash, *u.PasswordResetExpiresAt, s.now()) {
		return nil, errInvalidResetToken
	}
	if err := s.setPassword(u, password); err != nil {
		return nil, err
	}
	u.ClearPasswordReset()
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, storeError(err, errInvalidResetToken)
	}
	metricResetCompleted.Add(1)
	helpers.LogInfo(s.Logger, "password reset", logrus.Fields{"user_id": u.ID})
	return u, nil
}

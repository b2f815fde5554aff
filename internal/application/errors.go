package application

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	repo "github.com/oksasatya/go-todo-auth/internal/domain/repository"
	"github.com/oksasatya/go-todo-auth/pkg/apperror"
)

var (
	errInvalidCredentials = apperror.New(apperror.KindInvalidCredentials, "Invalid login info or password")
	errWrongPassword      = apperror.New(apperror.KindInvalidCredentials, "Incorrect current password")
	errInvalidResetToken  = apperror.New(apperror.KindInvalidOrExpiredToken, "Invalid or expired password reset link")
	errDeliveryFailed     = apperror.New(apperror.KindDeliveryFailed, "Unable to send email.")
	errNoSuchLogin        = apperror.New(apperror.KindUserNotFound, "There is no user. Fill the correct login info")
	errUserGone           = apperror.New(apperror.KindUserNotFound, "User does not exist anymore")
	errStale              = apperror.New(apperror.KindStaleCredentials, "You have recently changed password. Please login again")
	errMissingToken       = apperror.New(apperror.KindMissingCredentials, "Please login")
	errTokenInvalid       = apperror.New(apperror.KindTokenInvalid, "Invalid Token")
	errTokenExpired       = apperror.New(apperror.KindTokenExpired, "Token expired. Please login")
	errForbidden          = apperror.New(apperror.KindForbidden, "You don't have access")
	errInvalidID          = apperror.New(apperror.KindValidation, "Invalid ID")
)

// storeError maps repository failures onto application errors.
// notFound is returned for repo.ErrNotFound.
func storeError(err error, notFound *apperror.Error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repo.ErrNotFound) && notFound != nil {
		return notFound
	}
	if errors.Is(err, repo.ErrInvalidID) {
		return errInvalidID
	}
	var dup *repo.DuplicateError
	if errors.As(err, &dup) {
		return apperror.Wrap(apperror.KindConflict, "Duplicate field value: "+dup.Field+". Please use another value", err).
			WithDetails(map[string]string{dup.Field: "already in use"})
	}
	return apperror.Internal(err)
}

// hashError reports a password bcrypt cannot take as invalid input rather than a server fault.
func hashError(err error) error {
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return apperror.Wrap(apperror.KindValidation, "Invalid input data", err).
			WithDetails(map[string]string{"password": "must be at most 72 bytes long"})
	}
	return apperror.Internal(err)
}

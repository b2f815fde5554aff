package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash and is never serialized.
// The reset token fields are either both set or both nil.
type User struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	PasswordHash           string     `json:"-"`
	PasswordChangedAt      *time.Time `json:"-"`
	PasswordResetTokenHash *string    `json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
}

// SetPasswordReset records an outstanding reset token digest and its expiry.
func (u *User) SetPasswordReset(hash string, expiresAt time.Time) {
	u.PasswordResetTokenHash = &hash
	u.PasswordResetExpiresAt = &expiresAt
}

// ClearPasswordReset drops any outstanding reset token.
func (u *User) ClearPasswordReset() {
	u.PasswordResetTokenHash = nil
	u.PasswordResetExpiresAt = nil
}

// HasPasswordReset reports whether a reset token is outstanding.
func (u *User) HasPasswordReset() bool {
	return u.PasswordResetTokenHash != nil && u.PasswordResetExpiresAt != nil
}

// ChangedPasswordAfter reports whether the password was changed after t.
// Comparison happens at whole seconds, the precision of token timestamps.
func (u *User) ChangedPasswordAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return t.Unix() < u.PasswordChangedAt.Unix()
}

package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// ResetTokenLifetime is how long a password reset token stays valid. Not configurable.
const ResetTokenLifetime = time.Hour

const resetTokenBytes = 32

// ResetTokenGenerator issues one-time password reset tokens. Only the SHA-256 digest is meant to be stored.
type ResetTokenGenerator struct {
	Now func() time.Time
}

func NewResetTokenGenerator() *ResetTokenGenerator {
	return &ResetTokenGenerator{Now: time.Now}
}

// Issue returns the plain token for the email link, its hex digest for storage and its expiry.
func (g *ResetTokenGenerator) Issue() (plain, hash string, expiresAt time.Time, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err = rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(b)
	now := time.Now()
	if g.Now != nil {
		now = g.Now()
	}
	return plain, HashResetToken(plain), now.Add(ResetTokenLifetime), nil
}

// HashResetToken returns the hex SHA-256 digest of a plain reset token.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Match reports whether candidate hashes to storedHash and now is not past storedExpiresAt.
func (g *ResetTokenGenerator) Match(candidate, storedHash string, storedExpiresAt, now time.Time) bool {
	hashOK := subtle.ConstantTimeCompare([]byte(HashResetToken(candidate)), []byte(storedHash)) == 1
	fresh := !now.After(storedExpiresAt)
	return hashOK && fresh
}

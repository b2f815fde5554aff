package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestJWT(clock *fakeClock, ttl time.Duration) *JWTManager {
	m := NewJWTManager("test-secret", ttl)
	m.Now = clock.Now
	return m
}

func TestJWTIssueAndVerifyWithinWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestJWT(clock, time.Hour)

	tok, exp, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(time.Hour), exp)

	for _, offset := range []time.Duration{0, time.Second, 30 * time.Minute, time.Hour - time.Second} {
		clock.t = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(offset)
		claims, err := m.ParseAccessToken(tok)
		require.NoError(t, err, "offset %s", offset)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), claims.IssuedAtTime().UTC())
	}
}

func TestJWTExpiredAtAndAfterHorizon(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	m := newTestJWT(clock, time.Hour)

	tok, _, err := m.GenerateAccessToken("user-1")
	require.NoError(t, err)

	for _, offset := range []time.Duration{time.Hour, time.Hour + time.Second, 48 * time.Hour} {
		clock.t = start.Add(offset)
		_, err := m.ParseAccessToken(tok)
		assert.ErrorIs(t, err, ErrTokenExpired, "offset %s", offset)
	}
}

func TestJWTRejectsForeignSignature(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestJWT(clock, time.Hour)
	other := newTestJWT(clock, time.Hour)
	other.Secret = []byte("another-secret")

	tok, _, err := other.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestJWTRejectsGarbageAndOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestJWT(clock, time.Hour)

	_, err := m.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(clock.t),
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.Secret)
	require.NoError(t, err)
	_, err = m.ParseAccessToken(hs512)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTRejectsTokenWithoutExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	m := newTestJWT(clock, time.Hour)

	claims := &Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(clock.t)}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

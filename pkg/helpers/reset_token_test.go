package helpers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenIssue(t *testing.T) {
	t0 := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	g := &ResetTokenGenerator{Now: func() time.Time { return t0 }}

	plain, hash, exp, err := g.Issue()
	require.NoError(t, err)

	assert.Len(t, plain, 64, "32 random bytes hex encoded")
	assert.Len(t, hash, 64)
	assert.NotEqual(t, plain, hash)
	assert.Equal(t, HashResetToken(plain), hash)
	assert.Equal(t, t0.Add(3600*time.Second), exp)
}

func TestResetTokenIssueIsRandom(t *testing.T) {
	g := NewResetTokenGenerator()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		plain, _, _, err := g.Issue()
		require.NoError(t, err)
		require.False(t, seen[plain], "duplicate token issued")
		seen[plain] = true
	}
}

func TestResetTokenMatch(t *testing.T) {
	t0 := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	g := &ResetTokenGenerator{Now: func() time.Time { return t0 }}
	plain, hash, exp, err := g.Issue()
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		now       time.Time
		want      bool
	}{
		{"right token immediately", plain, t0, true},
		{"right token at expiry", plain, t0.Add(3600 * time.Second), true},
		{"right token one second late", plain, t0.Add(3601 * time.Second), false},
		{"wrong token in window", strings.Repeat("a", 64), t0.Add(time.Minute), false},
		{"empty token", "", t0, false},
		{"stored hash as candidate", hash, t0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Match(tt.candidate, hash, exp, tt.now))
		})
	}
}

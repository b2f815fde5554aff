package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "direct", cfg.MailDelivery)
	assert.Empty(t, cfg.ESAddrs())
	assert.Empty(t, cfg.TrustedProxyList())
	assert.False(t, cfg.TrustCloudflare)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PUBLIC_BASE_URL", "https://todo.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg := Load()

	assert.Equal(t, 90*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "https://todo.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins())
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxyList())
	assert.False(t, cfg.IsDevelopment())
	require.NoError(t, cfg.Validate())
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("JWT_EXPIRES_IN", "forever")
	t.Setenv("BCRYPT_COST", "twelve")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.MailSendEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"dev secret in production", func(c *Config) { c.Env = "production" }},
		{"empty secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero expiry", func(c *Config) { c.JWTExpiresIn = 0 }},
		{"cost too low", func(c *Config) { c.BcryptCost = 2 }},
		{"cost too high", func(c *Config) { c.BcryptCost = 32 }},
		{"unknown driver", func(c *Config) { c.StoreDriver = "mongo" }},
		{"unknown delivery", func(c *Config) { c.MailDelivery = "pigeon" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

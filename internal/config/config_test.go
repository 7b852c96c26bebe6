package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "DATABASE_URL", "JWT_SECRET", "JWT_EXPIRES_IN", "BCRYPT_COST",
	"CORS_ALLOWED_ORIGINS", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS",
	"SMTP_FROM", "SMTP_SECURE", "NOTIFY_EMAIL", "DEFAULT_ADMIN_USERNAME",
	"DEFAULT_ADMIN_EMAIL", "DEFAULT_ADMIN_PASSWORD", "DEFAULT_ADMIN_NAME",
	"RATE_LIMIT_LOGIN", "RATE_LIMIT_LOGIN_WINDOW", "MAX_BODY_BYTES",
	"TRUSTED_PROXIES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/portfolio?sslmode=disable")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CorsAllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "admin", cfg.DefaultAdmin.Username)
	assert.Equal(t, "admin@admin.local", cfg.DefaultAdmin.Email)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 10*time.Second, cfg.SMTP.VerifyTimeout)
	assert.Equal(t, RateLimit{Requests: 5, Window: 15 * time.Minute}, cfg.RateLimits.Login)
	assert.Equal(t, RateLimit{Requests: 10, Window: 15 * time.Minute}, cfg.RateLimits.Comment)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("PORT", "3000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("DEFAULT_ADMIN_USERNAME", "faran")
	t.Setenv("RATE_LIMIT_LOGIN", "3")
	t.Setenv("RATE_LIMIT_LOGIN_WINDOW", "1m")
	t.Setenv("SMTP_SECURE", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")
	t.Setenv("DATABASE_URL", "postgresql://user:pass@db:5432/portfolio")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CorsAllowedOrigins)
	assert.Equal(t, "me@example.com", cfg.SMTP.From)
	assert.Equal(t, "me@example.com", cfg.SMTP.NotifyEmail)
	assert.True(t, cfg.SMTP.Secure)
	assert.Equal(t, "faran@admin.local", cfg.DefaultAdmin.Email)
	assert.Equal(t, RateLimit{Requests: 3, Window: time.Minute}, cfg.RateLimits.Login)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL is required"},
		{"dsn database url", map[string]string{"DATABASE_URL": "host=localhost user=app dbname=portfolio"}, "postgres:// URL"},
		{"wrong database scheme", map[string]string{"DATABASE_URL": "mysql://localhost:3306/portfolio"}, "postgres:// URL"},
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"short jwt secret", map[string]string{"JWT_SECRET": "short"}, "at least 16"},
		{"bad bcrypt cost", map[string]string{"BCRYPT_COST": "2"}, "BCRYPT_COST"},
		{"zero rate limit", map[string]string{"RATE_LIMIT_LOGIN": "0"}, "RATE_LIMIT_LOGIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Empty(t, splitCSV(" , "))
	assert.Equal(t, []string{"a", "b"}, splitCSV("a,b"))
	assert.Equal(t, []string{"*"}, corsOrigins(" , "))
	assert.Equal(t, []string{"https://a.example"}, corsOrigins("https://a.example"))
}

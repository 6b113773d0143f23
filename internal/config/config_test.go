package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-32-characters-long-for-testing")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("AVATAR_BUCKET", "test-avatars")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "ecomstore", cfg.Database.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 72*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, 20*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.Equal(t, "lax", cfg.Auth.CookieSameSite)
	assert.Equal(t, "users", cfg.Storage.KeyPrefix)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("AVATAR_BUCKET", "test-avatars")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingDBPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-32-characters-long-for-testing")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("AVATAR_BUCKET", "test-avatars")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingAvatarBucket(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-32-characters-long-for-testing")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("AVATAR_BUCKET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_EXPIRY", "24h")
	t.Setenv("RESET_TOKEN_TTL", "10m")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionExpiry)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_ProductionCookieSecure(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
}

func TestValidateJWTSecret(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		env        string
		shouldFail bool
	}{
		{
			name:       "strong secret in development",
			secret:     "dev-secret-at-least-16ch",
			env:        "development",
			shouldFail: false,
		},
		{
			name:       "short secret in development",
			secret:     "too-short",
			env:        "development",
			shouldFail: true,
		},
		{
			name:       "16 chars rejected in production",
			secret:     "exactly16chars!!",
			env:        "production",
			shouldFail: true,
		},
		{
			name:       "32 chars accepted in production",
			secret:     "production-secret-32-characters!",
			env:        "production",
			shouldFail: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateJWTSecret(tt.secret, tt.env)
			if tt.shouldFail {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "app",
		Password: "pw",
		Name:     "ecomstore",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.example.com port=5433 user=app password=pw dbname=ecomstore sslmode=require",
		cfg.DSN())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "HTTP_PORT", "DATABASE_URL", "MONGO_URI",
		"APP_MIGRATE", "RATE_RPS", "CORS_ORIGINS", "JWT_SECRET", "JWT_REFRESH_SECRET",
		"ADMIN_USERNAME", "ADMIN_PASSWORD_HASH",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, 100, cfg.RateRPS)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MONGO_URI", "mongodb://db:27017/crm")
	t.Setenv("APP_MIGRATE", "false")
	t.Setenv("RATE_RPS", "0")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abc")

	cfg := Load()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "mongodb://db:27017/crm", cfg.DatabaseURL)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, 0, cfg.RateRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.JWTRefreshSecret, "refresh secret falls back to the access secret")
	assert.True(t, cfg.AuthEnabled())
}

func TestLoad_PortWinsOverHTTPPort(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("HTTP_PORT", "9090")
	assert.Equal(t, "7000", Load().HTTPPort)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_NAME", "attendly_test")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "15m", cfg.JWT.AccessExpiration)
	assert.Equal(t, 100, cfg.Notification.BatchSize)
	assert.Equal(t, 2, cfg.Notification.WorkerCount)
	assert.Equal(t, "5s", cfg.Notification.FlushInterval)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Name: "attendly"},
		JWT:      JWTConfig{Secret: "s"},
	}
	require.NoError(t, cfg.Validate())

	cfg.JWT.Secret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWT.Secret = "s"
	cfg.Database.Name = ""
	assert.ErrorContains(t, cfg.Validate(), "DB_NAME")
}

func TestDatabaseURL(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "svc",
		Password: "pw",
		Name:     "attendly",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://svc:pw@db.internal:5433/attendly?sslmode=require", d.URL())
}

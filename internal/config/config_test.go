package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("DATABASE_DSN", "postgres://localhost/hr_admin_test")
	t.Setenv("INITIAL_ADMIN_PASSWORD", "test-password")
	t.Setenv("INITIAL_ADMIN_EMAIL", "admin@workhive.dev")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RABBITMQ_DSN", "amqp://localhost")
	t.Setenv("REDIS_PASSWORD", "test-password")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.QueryTimeout)
	assert.Equal(t, 20, cfg.Database.TransactionTimeout)
	assert.Equal(t, "admin", cfg.InitialAdmin.Username)
	assert.Equal(t, 60, cfg.Dashboard.CacheExpiration)
	assert.Equal(t, "workhive.dev", cfg.Company.EmailDomain)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registers the restore; unsetting afterwards leaves the variable
	// absent for the duration of this test only
	t.Setenv("DATABASE_DSN", "")
	os.Unsetenv("DATABASE_DSN")

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

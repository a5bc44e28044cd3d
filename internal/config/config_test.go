package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/connectors")
	t.Setenv("UCS_ENDPOINT", "localhost:50051")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
	assert.Equal(t, 30*time.Second, cfg.UCS.Timeout)
	assert.Equal(t, "env", cfg.Credentials.Source)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_CONNS", "40")
	t.Setenv("DB_MIN_CONNS", "10")
	t.Setenv("UCS_TIMEOUT_SECONDS", "5")
	t.Setenv("WELLSFARGO_RPS", "2.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, int32(40), cfg.Database.MaxConns)
	assert.Equal(t, int32(10), cfg.Database.MinConns)
	assert.Equal(t, 5*time.Second, cfg.UCS.Timeout)
	assert.Equal(t, 2.5, cfg.Connectors.Wellsfargo.RequestsPerSecond)
}

func TestLoadFromEnv_RequiredFields(t *testing.T) {
	t.Setenv("UCS_ENDPOINT", "localhost:50051")
	t.Setenv("DATABASE_URL", "")
	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://user:pw@localhost:5432/connectors")
	t.Setenv("UCS_ENDPOINT", "")
	_, err = LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UCS_ENDPOINT")
}

func TestLoadFromEnv_CredentialSourceValidation(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("CREDENTIAL_SOURCE", "gcp")
	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CREDENTIAL_SOURCE")

	t.Setenv("CREDENTIAL_SOURCE", "vault")
	_, err = LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VAULT_ADDR")

	t.Setenv("VAULT_ADDR", "https://vault.internal:8200")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "vault", cfg.Credentials.Source)
}
